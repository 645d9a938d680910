// Package analysis runs one cable check end to end:
// catalog lookup, cable configuration, equilibrium solve, limit checks.
package analysis

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"CableCheck/internal/calc/cable"
	"CableCheck/internal/calc/catalog"
	"CableCheck/internal/calc/evaluate"
	"CableCheck/internal/calc/material"
	"CableCheck/internal/calc/solver"
	"CableCheck/internal/metrics"
)

type Input struct {
	Diameter             string  `json:"diameter"`
	SpanM                float64 `json:"span_m"`
	Material             string  `json:"material,omitempty"`
	LoadKNM              float64 `json:"load_kn_m"`
	PrestressKN          float64 `json:"prestress_kn"`
	TemperatureChangeC   float64 `json:"temperature_change_c"`
	DeflectionLimitRatio float64 `json:"deflection_limit_ratio"` // fraction of span, e.g. 0.005 for l/200
	SafetyFactor         float64 `json:"safety_factor,omitempty"`
	ImportanceFactor     float64 `json:"importance_factor,omitempty"`
}

type Result struct {
	Diameter        string  `json:"diameter"`
	Material        string  `json:"material"`
	SpanM           float64 `json:"span_m"`
	AreaMM2         float64 `json:"area_mm2"`
	BreakingLoadKN  float64 `json:"breaking_load_kn"`
	AllowableLoadKN float64 `json:"allowable_load_kn"`
	evaluate.Result
	Iterations int    `json:"iterations"`
	Notes      string `json:"notes"`
}

// InvalidInputError names the first input field out of range.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s must be positive (got %g)", e.Field, e.Value)
}

// Env is the analysis context shared by all requests. It is read-only.
type Env struct {
	Catalog   *catalog.Catalog
	Materials *material.Library
	Derating  cable.Derating
	Options   solver.Options
	Logger    *zap.Logger
	Metrics   *metrics.Recorder
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func Validate(in Input) error {
	checks := []struct {
		name string
		v    float64
	}{
		{"span_m", in.SpanM},
		{"load_kn_m", in.LoadKNM},
		{"prestress_kn", in.PrestressKN},
		{"deflection_limit_ratio", in.DeflectionLimitRatio},
	}
	for _, c := range checks {
		if !(c.v > 0) {
			return &InvalidInputError{Field: c.name, Value: c.v}
		}
	}
	// zero factors fall back to the context defaults
	if in.SafetyFactor < 0 {
		return &InvalidInputError{Field: "safety_factor", Value: in.SafetyFactor}
	}
	if in.ImportanceFactor < 0 {
		return &InvalidInputError{Field: "importance_factor", Value: in.ImportanceFactor}
	}
	return nil
}

// DeratingFor applies the per-analysis overrides to the context defaults.
func (e *Env) DeratingFor(in Input) cable.Derating {
	d := e.Derating
	if d.SafetyFactor <= 0 || d.ImportanceFactor <= 0 {
		d = cable.DefaultDerating()
	}
	if in.SafetyFactor > 0 {
		d.SafetyFactor = in.SafetyFactor
	}
	if in.ImportanceFactor > 0 {
		d.ImportanceFactor = in.ImportanceFactor
	}
	return d
}

// Cable configures a fresh cable for the input's diameter, span and material.
func (e *Env) Cable(in Input) (*cable.Cable, error) {
	mat, err := e.Materials.Get(in.Material)
	if err != nil {
		return nil, err
	}
	return cable.New(e.Catalog, in.Diameter, in.SpanM, mat, e.DeratingFor(in))
}

func (e *Env) Calculate(in Input) (Result, error) {
	start := time.Now()
	res, err := e.calculate(in)
	e.Metrics.Analysis(statusOf(err), time.Since(start))
	log := e.logger().With(
		zap.String("diameter", in.Diameter),
		zap.Float64("span_m", in.SpanM),
		zap.Float64("load_kn_m", in.LoadKNM),
		zap.Float64("prestress_kn", in.PrestressKN),
		zap.Float64("temperature_change_c", in.TemperatureChangeC),
	)
	if err != nil {
		log.Warn("cable analysis failed", zap.Error(err))
		return Result{}, err
	}
	e.Metrics.Converged(res.Iterations)
	e.Metrics.Check("tension", res.OKTension)
	e.Metrics.Check("deflection", res.OKDeflection)
	log.Debug("cable analysis",
		zap.Float64("support_force_kn", res.SupportForceKN),
		zap.Float64("utilization", res.Utilization),
		zap.Float64("deflection_mm", res.DeflectionMM),
		zap.Int("iterations", res.Iterations),
	)
	return res, nil
}

func (e *Env) calculate(in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}
	c, err := e.Cable(in)
	if err != nil {
		return Result{}, err
	}
	sol, err := solver.Solve(c, solver.Inputs{
		LoadKNM:            in.LoadKNM,
		PrestressKN:        in.PrestressKN,
		TemperatureChangeC: in.TemperatureChangeC,
	}, e.Options)
	if err != nil {
		return Result{}, fmt.Errorf("cable %s: %w", c.Key(), err)
	}
	ev := evaluate.Evaluate(c, sol.SupportForceKN, in.LoadKNM, c.SpanM(), in.DeflectionLimitRatio)

	return Result{
		Diameter:        c.Key(),
		Material:        c.Material().Name(),
		SpanM:           c.SpanM(),
		AreaMM2:         c.AreaMM2(),
		BreakingLoadKN:  c.BreakingLoadKN(),
		AllowableLoadKN: c.AllowableLoadKN(),
		Result:          ev,
		Iterations:      sol.Iterations,
		Notes:           "Small-sag parabolic cable under UDL, prestress and temperature change.",
	}, nil
}

func statusOf(err error) string {
	var (
		invalid  *InvalidInputError
		notFound *catalog.DiameterNotFoundError
		conv     *solver.ConvergenceError
	)
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.As(err, &invalid):
		return metrics.StatusInvalid
	case errors.As(err, &notFound):
		return metrics.StatusNotFound
	case errors.As(err, &conv):
		return metrics.StatusNotConverged
	default:
		return metrics.StatusError
	}
}
