// Package catalog maps a nominal cable diameter to its section area and
// breaking load, read from a reference table.
//
// Columns are taken by position: diameter, area (mm2), breaking load (kN) and
// an optional precomputed limit (kN). The header row only names them.
package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type Entry struct {
	Diameter       string   `json:"diameter"`
	AreaMM2        float64  `json:"area_mm2"`
	BreakingLoadKN float64  `json:"breaking_load_kn"`
	LimitKN        *float64 `json:"limit_kn,omitempty"`
}

// Catalog is read-only once built and safe for concurrent lookups.
type Catalog struct {
	Header  []string
	entries map[string]Entry
	keys    []string
}

// DiameterNotFoundError reports a diameter key absent from the catalog.
type DiameterNotFoundError struct {
	Diameter string
}

func (e *DiameterNotFoundError) Error() string {
	return fmt.Sprintf("diameter %q is not in the cable table", e.Diameter)
}

// ParseError reports a malformed catalog row. Row is 1-based and counts the header.
type ParseError struct {
	Row    int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("cable table row %d, column %d: %v", e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("cable table row %d: %v", e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FromRows builds a catalog from a table whose first row is the header.
func FromRows(rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("cable table is empty")
	}
	c := &Catalog{
		Header:  append([]string(nil), rows[0]...),
		entries: make(map[string]Entry, len(rows)-1),
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		e, err := parseRow(row)
		if err != nil {
			err.Row = i + 1
			return nil, err
		}
		if _, dup := c.entries[e.Diameter]; !dup {
			c.keys = append(c.keys, e.Diameter)
		}
		c.entries[e.Diameter] = e
	}
	if len(c.entries) == 0 {
		return nil, fmt.Errorf("cable table has no rows")
	}
	return c, nil
}

func parseRow(row []string) (Entry, *ParseError) {
	if len(row) < 3 {
		return Entry{}, &ParseError{Err: fmt.Errorf("expected at least 3 columns, got %d", len(row))}
	}
	var vals [3]float64
	for j := 0; j < 3; j++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
		if err != nil {
			return Entry{}, &ParseError{Column: j + 1, Err: err}
		}
		vals[j] = v
	}
	d := math.Trunc(vals[0])
	if math.IsNaN(d) || d < math.MinInt64 || d >= math.MaxInt64 {
		return Entry{}, &ParseError{Column: 1, Err: fmt.Errorf("diameter %v out of range", vals[0])}
	}
	e := Entry{
		// integer-truncated: "30.0" and "30.7" both key as "30"
		Diameter:       strconv.FormatInt(int64(d), 10),
		AreaMM2:        vals[1],
		BreakingLoadKN: vals[2],
	}
	if len(row) > 3 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64); err == nil {
			e.LimitKN = &v
		}
	}
	return e, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Lookup returns the entry for an exact diameter key. There is no interpolation.
func (c *Catalog) Lookup(diameter string) (Entry, error) {
	e, ok := c.entries[diameter]
	if !ok {
		return Entry{}, &DiameterNotFoundError{Diameter: diameter}
	}
	return e, nil
}

// Keys returns the diameter keys in table order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Sorted returns the diameter keys in ascending numeric order.
func (c *Catalog) Sorted() []string {
	keys := c.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}

func (c *Catalog) Len() int { return len(c.entries) }
