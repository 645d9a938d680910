package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"CableCheck/internal/calc/analysis"
)

var ErrEmptySheet = errors.New("empty sheet")

// Columns of the first sheet, after one header row.
var Columns = []string{"diameter", "span_m", "load_kn_m", "prestress_kn", "temperature_change_c", "deflection_limit_ratio", "material"}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type Sheet struct {
	Items   []analysis.Input `json:"-"`
	Rows    []int            `json:"rows"`
	Skipped []RowError       `json:"skipped,omitempty"`
}

// Read parses the first sheet of an xlsx workbook into analysis inputs.
// Malformed rows are skipped and reported with their 1-based sheet row.
func Read(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Sheet{}, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return Sheet{}, ErrEmptySheet
	}
	var sheet Sheet
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		in, err := parseRow(row)
		if err != nil {
			sheet.Skipped = append(sheet.Skipped, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		sheet.Items = append(sheet.Items, in)
		sheet.Rows = append(sheet.Rows, i+1)
	}
	if len(sheet.Items) == 0 && len(sheet.Skipped) == 0 {
		return Sheet{}, ErrEmptySheet
	}
	return sheet, nil
}

func parseRow(row []string) (analysis.Input, error) {
	if len(row) < 6 {
		return analysis.Input{}, fmt.Errorf("expected at least 6 columns, got %d", len(row))
	}
	var nums [5]float64
	for k := range nums {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[k+1]), 64)
		if err != nil {
			return analysis.Input{}, fmt.Errorf("%s: %w", Columns[k+1], err)
		}
		nums[k] = v
	}
	in := analysis.Input{
		Diameter:             strings.TrimSpace(row[0]),
		SpanM:                nums[0],
		LoadKNM:              nums[1],
		PrestressKN:          nums[2],
		TemperatureChangeC:   nums[3],
		DeflectionLimitRatio: nums[4],
	}
	if len(row) > 6 {
		in.Material = strings.TrimSpace(row[6])
	}
	return in, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
