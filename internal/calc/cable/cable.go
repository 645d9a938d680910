package cable

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"CableCheck/internal/calc/catalog"
	"CableCheck/internal/calc/material"
)

// ErrAlreadyConfigured is returned when Configure is called on a valid cable.
var ErrAlreadyConfigured = errors.New("cable already configured")

// Derating factors reduce the breaking load to the allowable service load.
type Derating struct {
	SafetyFactor     float64 `json:"safety_factor"`
	ImportanceFactor float64 `json:"importance_factor"`
}

func DefaultDerating() Derating {
	return Derating{SafetyFactor: 1.5, ImportanceFactor: 1.0}
}

func (d Derating) Validate() error {
	if d.SafetyFactor <= 0 || d.ImportanceFactor <= 0 {
		return fmt.Errorf("derating factors must be positive (safety %g, importance %g)", d.SafetyFactor, d.ImportanceFactor)
	}
	return nil
}

// Allowable = breaking / (safety * importance), rounded to 0.1 kN.
func (d Derating) Allowable(breakingKN float64) float64 {
	v := breakingKN / (d.SafetyFactor * d.ImportanceFactor)
	return Round(v, 1)
}

// Round rounds the exact binary value of v to places decimals, ties to even.
// NaN and Inf pass through.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	// 1100 digits hold every float64 exactly
	exact := new(big.Float).SetFloat64(v).Text('f', 1100)
	d, err := decimal.NewFromString(exact)
	if err != nil {
		return v
	}
	return d.RoundBank(places).InexactFloat64()
}

// Lookuper resolves a diameter key to its catalog entry.
type Lookuper interface {
	Lookup(diameter string) (catalog.Entry, error)
}

// Cable is the unit of analysis. The zero value is unconfigured; Configure
// populates it once and it does not change afterwards.
type Cable struct {
	key       string
	diameter  float64
	area      float64
	breaking  float64
	allowable float64
	span      float64
	material  *material.Material
	valid     bool
}

// New returns a configured cable.
func New(cat Lookuper, key string, spanM float64, mat *material.Material, d Derating) (*Cable, error) {
	c := &Cable{}
	if err := c.Configure(cat, key, spanM, mat, d); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure looks the diameter up and derates its breaking load. On any
// error the cable stays unconfigured. Span is not checked here.
func (c *Cable) Configure(cat Lookuper, key string, spanM float64, mat *material.Material, d Derating) error {
	if c.valid {
		return ErrAlreadyConfigured
	}
	e, err := cat.Lookup(key)
	if err != nil {
		return err
	}
	diameter, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return fmt.Errorf("diameter %q: %w", key, err)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if mat == nil {
		return fmt.Errorf("cable %s: material required", key)
	}

	c.key = key
	c.diameter = diameter
	c.area = e.AreaMM2
	c.breaking = e.BreakingLoadKN
	c.allowable = d.Allowable(e.BreakingLoadKN)
	c.span = spanM
	c.material = mat
	c.valid = true
	return nil
}

// IsValid reports whether the catalog lookup succeeded.
func (c *Cable) IsValid() bool { return c != nil && c.valid }

func (c *Cable) Key() string { return c.key }
func (c *Cable) DiameterMM() float64 { return c.diameter }
func (c *Cable) AreaMM2() float64 { return c.area }
func (c *Cable) BreakingLoadKN() float64 { return c.breaking }
func (c *Cable) AllowableLoadKN() float64 { return c.allowable }
func (c *Cable) SpanM() float64 { return c.span }
func (c *Cable) Material() *material.Material { return c.material }

func (c *Cable) String() string {
	if !c.IsValid() {
		return "Cable<unconfigured>"
	}
	return fmt.Sprintf("Cable<Φ %g mm, %g m>", c.diameter, c.span)
}
