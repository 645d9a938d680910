package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
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

func item(diameter string, load float64) analysis.Input {
	return analysis.Input{Diameter: diameter, SpanM: 10, LoadKNM: load, PrestressKN: 100, DeflectionLimitRatio: 0.02}
}

func TestCalculateKeepsOrder(t *testing.T) {
	var in Input
	for i := 0; i < 40; i++ {
		in.Items = append(in.Items, item("35", float64(i%5+1)))
	}
	in.Items[7] = item("40", 2)
	in.Items[13].SpanM = 0

	res, err := Calculate(context.Background(), testEnv(), in)
	require.NoError(t, err)
	require.Len(t, res.Results, 40)
	assert.Equal(t, 38, res.Succeeded)
	assert.Equal(t, 2, res.Failed)

	env := testEnv()
	for i, r := range res.Results {
		assert.Equal(t, i, r.Index)
		switch i {
		case 7, 13:
			assert.Nil(t, r.Result, "item %d", i)
			assert.Equal(t, http.StatusBadRequest, r.Status)
			assert.NotEmpty(t, r.Error)
		default:
			require.NotNil(t, r.Result, "item %d", i)
			want, err := env.Calculate(in.Items[i])
			require.NoError(t, err)
			assert.Equal(t, want, *r.Result, fmt.Sprintf("item %d", i))
		}
	}
	assert.Contains(t, res.Results[7].Error, "40")
}

func TestCalculateNoItems(t *testing.T) {
	_, err := Calculate(context.Background(), testEnv(), Input{})
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestCalculateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Calculate(ctx, testEnv(), Input{Items: []analysis.Input{item("35", 2), item("45", 2)}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Failed)
	for _, r := range res.Results {
		assert.Contains(t, r.Error, context.Canceled.Error())
	}
}

func TestHandler(t *testing.T) {
	h := &Handler{Env: testEnv()}

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(Input{Items: []analysis.Input{item("35", 2), item("99", 2)}}))
	rec := httptest.NewRecorder()
	h.Cable(rec, httptest.NewRequest(http.MethodPost, "/api/tools/cable/batch", &buf))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 0.22, res.Results[0].Result.Utilization)
	assert.Equal(t, http.StatusBadRequest, res.Results[1].Status)

	rec = httptest.NewRecorder()
	h.Cable(rec, httptest.NewRequest(http.MethodPost, "/api/tools/cable/batch", bytes.NewBufferString(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
