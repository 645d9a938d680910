package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
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

var scenario = analysis.Input{Diameter: "35", SpanM: 10, LoadKNM: 2, PrestressKN: 100, DeflectionLimitRatio: 0.02}

func TestRender(t *testing.T) {
	res, err := testEnv().Calculate(scenario)
	require.NoError(t, err)

	var buf bytes.Buffer
	number, err := Render(&buf, Meta{Project: "Footbridge", Author: "QA"}, scenario, res, Options{
		Now:          func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
		Uncompressed: true,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(number)
	require.NoError(t, err)

	pdf := buf.String()
	assert.True(t, strings.HasPrefix(pdf, "%PDF-"))
	for _, want := range []string{
		"Cable Calculation Sheet",
		"Report No: " + number,
		"Project: Footbridge",
		"Date: 2024-03-01",
		"Allowable load: 780.0 kN",
		"Utilization H/allowable: 0.22  OK",
	} {
		assert.Contains(t, pdf, want)
	}
}

func TestRenderUniqueNumbers(t *testing.T) {
	res, err := testEnv().Calculate(scenario)
	require.NoError(t, err)
	a, err := Render(&bytes.Buffer{}, Meta{}, scenario, res, Options{})
	require.NoError(t, err)
	b, err := Render(&bytes.Buffer{}, Meta{}, scenario, res, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHandler(t *testing.T) {
	h := &Handler{Env: testEnv()}

	body := `{"project":"Footbridge","analysis":{"diameter":"35","span_m":10,"load_kn_m":2,"prestress_kn":100,"deflection_limit_ratio":0.02}}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/cable/report", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Report-Number"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	body = `{"analysis":{"diameter":"40","span_m":10,"load_kn_m":2,"prestress_kn":100,"deflection_limit_ratio":0.02}}`
	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/cable/report", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
