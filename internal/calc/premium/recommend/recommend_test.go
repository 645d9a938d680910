package recommend

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/cable"
	"CableCheck/internal/calc/catalog"
	"CableCheck/internal/calc/material"
	"CableCheck/internal/calc/solver"
)

func testEnv() *analysis.Env {
	return &analysis.Env{
		Catalog:   catalog.Default(),
		Materials: material.DefaultLibrary(),
		Derating:  cable.DefaultDerating(),
		Options:   solver.DefaultOptions(),
	}
}

func TestPrestressRoundTrip(t *testing.T) {
	env := testEnv()
	in := analysis.Input{Diameter: "35", SpanM: 10, LoadKNM: 2, DeflectionLimitRatio: 0.015}

	res, err := Prestress(env, in)
	require.NoError(t, err)
	assert.InDelta(t, 166.667, res.RequiredForceKN, 1e-3)
	assert.InDelta(t, 85.83, res.MinPrestressKN, 0.05)
	assert.True(t, res.PrestressRequired)
	assert.True(t, res.Feasible)
	assert.Equal(t, 0.21, res.Utilization)

	// solving with the recommended prestress lands on the limit
	in.PrestressKN = res.MinPrestressKN
	check, err := env.Calculate(in)
	require.NoError(t, err)
	assert.InDelta(t, res.RequiredForceKN, check.SupportForceKN, 1e-4)
	assert.InDelta(t, check.DeflectionLimitMM, check.DeflectionMM, 1e-4)
}

func TestPrestressNotRequired(t *testing.T) {
	res, err := Prestress(testEnv(), analysis.Input{Diameter: "35", SpanM: 10, LoadKNM: 2, DeflectionLimitRatio: 0.02})
	require.NoError(t, err)
	assert.False(t, res.PrestressRequired)
	assert.Zero(t, res.MinPrestressKN)
	assert.InDelta(t, 125, res.RequiredForceKN, 1e-9)
}

func TestPrestressInfeasible(t *testing.T) {
	res, err := Prestress(testEnv(), analysis.Input{Diameter: "25", SpanM: 10, LoadKNM: 2, DeflectionLimitRatio: 0.002})
	require.NoError(t, err)
	assert.False(t, res.Feasible)
	assert.Equal(t, 3.15, res.Utilization)
}

func TestPrestressErrors(t *testing.T) {
	_, err := Prestress(testEnv(), analysis.Input{Diameter: "35", SpanM: 10, LoadKNM: 2})
	var inv *analysis.InvalidInputError
	assert.ErrorAs(t, err, &inv)

	_, err = Prestress(testEnv(), analysis.Input{Diameter: "99", SpanM: 10, LoadKNM: 2, DeflectionLimitRatio: 0.01})
	var nf *catalog.DiameterNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestHandler(t *testing.T) {
	h := &Handler{Env: testEnv()}
	rec := httptest.NewRecorder()
	body := `{"diameter":"35","span_m":10,"load_kn_m":2,"deflection_limit_ratio":0.015}`
	h.Prestress(rec, httptest.NewRequest(http.MethodPost, "/api/tools/cable/prestress", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"prestress_required":true`)

	rec = httptest.NewRecorder()
	h.Prestress(rec, httptest.NewRequest(http.MethodPost, "/api/tools/cable/prestress", strings.NewReader(`{"diameter":"40","span_m":10,"load_kn_m":2,"deflection_limit_ratio":0.015}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
