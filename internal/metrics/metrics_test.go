package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder("unit")
	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues("unit", StatusOK))
	r.Analysis(StatusOK, time.Millisecond)
	r.Analysis(StatusOK, time.Millisecond)
	assert.Equal(t, before+2, testutil.ToFloat64(AnalysesTotal.WithLabelValues("unit", StatusOK)))

	failed := testutil.ToFloat64(ChecksFailed.WithLabelValues("deflection"))
	r.Check("deflection", true)
	r.Check("deflection", false)
	assert.Equal(t, failed+1, testutil.ToFloat64(ChecksFailed.WithLabelValues("deflection")))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Analysis(StatusError, time.Second)
		r.Converged(3)
		r.Check("tension", false)
	})
}
