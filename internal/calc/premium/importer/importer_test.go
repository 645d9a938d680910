package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/cable"
	"CableCheck/internal/calc/catalog"
	"CableCheck/internal/calc/material"
	"CableCheck/internal/calc/solver"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead(t *testing.T) {
	buf := workbook(t,
		[]any{"35", 10, 2, 100, 0, 0.02},
		[]any{},
		[]any{"45", 12, "x", 100, 0, 0.02},
		[]any{"25", 8, 1.5, 80, -20, 0.01, "Strand"},
		[]any{"30", 8},
	)
	sheet, err := Read(buf)
	require.NoError(t, err)

	require.Len(t, sheet.Items, 2)
	assert.Equal(t, []int{2, 5}, sheet.Rows)
	assert.Equal(t, analysis.Input{
		Diameter: "35", SpanM: 10, LoadKNM: 2, PrestressKN: 100, DeflectionLimitRatio: 0.02,
	}, sheet.Items[0])
	assert.Equal(t, "Strand", sheet.Items[1].Material)
	assert.Equal(t, -20.0, sheet.Items[1].TemperatureChangeC)

	require.Len(t, sheet.Skipped, 2)
	assert.Equal(t, 4, sheet.Skipped[0].Row)
	assert.Contains(t, sheet.Skipped[0].Error, "load_kn_m")
	assert.Equal(t, 6, sheet.Skipped[1].Row)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(workbook(t))
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = Read(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

func upload(t *testing.T, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "cables.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/tools/cable/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler(t *testing.T) {
	h := &Handler{Env: &analysis.Env{
		Catalog:   catalog.Default(),
		Materials: material.DefaultLibrary(),
		Derating:  cable.DefaultDerating(),
		Options:   solver.DefaultOptions(),
	}}

	buf := workbook(t,
		[]any{"35", 10, 2, 100, 0, 0.02},
		[]any{"40", 10, 2, 100, 0, 0.02},
	)
	rec := httptest.NewRecorder()
	h.Cable(rec, upload(t, buf.Bytes()))
	require.Equal(t, http.StatusOK, rec.Code)

	var res ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []int{2, 3}, res.Rows)
	assert.Equal(t, 0.22, res.Results[0].Result.Utilization)

	rec = httptest.NewRecorder()
	h.Cable(rec, httptest.NewRequest(http.MethodPost, "/api/tools/cable/import", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
