package loads

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		self   float64
		design float64
	}{
		{"sls default", Input{AreaMM2: 842, PermanentKNM: 1, VariableKNM: 0.5}, 0.066097, 1.566097},
		{"sp20", Input{Method: MethodSP20, AreaMM2: 842, PermanentKNM: 1, VariableKNM: 0.5}, 0.066097, 1.05*1.066097 + 1.4*0.5},
		{"en1990", Input{Method: MethodEN1990, AreaMM2: 842, PermanentKNM: 1, VariableKNM: 0.5}, 0.066097, 1.35*1.066097 + 1.5*0.5},
		{"unit weight", Input{AreaMM2: 1000, UnitWeight: 100, VariableKNM: 2}, 0.1, 2.1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Calculate(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.self, res.SelfWeightKNM, 1e-6)
			assert.InDelta(t, tc.design, res.DesignLoadKNM, 1e-6)
		})
	}
}

func TestCalculateInvalid(t *testing.T) {
	for _, in := range []Input{
		{AreaMM2: -1},
		{PermanentKNM: -1},
		{VariableKNM: -1},
		{},
		{Method: "EN1990x", AreaMM2: 842, VariableKNM: 1},
		{Method: "sp20", AreaMM2: 842, VariableKNM: 1},
	} {
		_, err := Calculate(in)
		assert.Error(t, err, "%+v", in)
	}
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"method":"SP20","area_mm2":842,"variable_kn_m":1}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"combo_name":"SP20 basic"`)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
