package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

//go:embed data/cables.csv
var referenceTable []byte

// Default parses the built-in reference table.
func Default() *Catalog {
	c, err := ReadCSV(bytes.NewReader(referenceTable))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in table: %v", err))
	}
	return c
}

func ReadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return FromRows(rows)
}

// ReadXLSX takes the first sheet of a workbook.
func ReadXLSX(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return FromRows(rows)
}

// Open reads a catalog file, choosing the format by extension.
func Open(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ReadCSV(file)
	case ".xlsx", ".xlsm":
		return ReadXLSX(file)
	default:
		return nil, fmt.Errorf("unsupported cable table format %q", filepath.Ext(path))
	}
}

// RowSource yields a cable table, header row first.
type RowSource interface {
	CatalogRows(ctx context.Context) ([][]string, error)
}

// Load resolves a catalog source name: "builtin" (or empty), "postgres"
// (read through db), or a file path.
func Load(ctx context.Context, source string, db RowSource) (*Catalog, error) {
	switch source {
	case "", "builtin":
		return Default(), nil
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("catalog source postgres needs a database")
		}
		rows, err := db.CatalogRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("read cable table: %w", err)
		}
		return FromRows(rows)
	default:
		return Open(source)
	}
}
