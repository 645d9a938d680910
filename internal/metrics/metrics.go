// Package metrics exposes Prometheus metrics for cable analyses.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cable_analyses_total",
			Help: "Cable analyses by outcome",
		},
		[]string{"source", "status"},
	)

	SolverIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cable_solver_iterations",
			Help:    "Newton-Raphson iterations per converged solve",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 100},
		},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cable_analysis_duration_seconds",
			Help:    "Time spent in one analysis",
			Buckets: []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1},
		},
		[]string{"source"},
	)

	ChecksFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cable_checks_failed_total",
			Help: "Analyses failing a limit check",
		},
		[]string{"check"},
	)
)

// Status values for AnalysesTotal.
const (
	StatusOK           = "ok"
	StatusInvalid      = "invalid_input"
	StatusNotFound     = "diameter_not_found"
	StatusNotConverged = "not_converged"
	StatusError        = "error"
)

// Recorder records metrics for one caller (http, cli, batch).
type Recorder struct {
	source string
}

func NewRecorder(source string) *Recorder {
	return &Recorder{source: source}
}

// Recorder methods are no-ops on a nil receiver.
func (r *Recorder) Analysis(status string, d time.Duration) {
	if r == nil {
		return
	}
	AnalysesTotal.WithLabelValues(r.source, status).Inc()
	AnalysisDuration.WithLabelValues(r.source).Observe(d.Seconds())
}

func (r *Recorder) Converged(iterations int) {
	if r == nil {
		return
	}
	SolverIterations.Observe(float64(iterations))
}

func (r *Recorder) Check(name string, ok bool) {
	if r != nil && !ok {
		ChecksFailed.WithLabelValues(name).Inc()
	}
}
