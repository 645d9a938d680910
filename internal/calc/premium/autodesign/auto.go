package autodesign

import (
	"context"
	"errors"
	"fmt"

	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/solver"
)

var ErrNoAdequateCable = errors.New("no catalog cable satisfies both checks")

// Input is an analysis input without a diameter; the catalog is searched instead.
type Input struct {
	SpanM                float64 `json:"span_m"`
	Material             string  `json:"material,omitempty"`
	LoadKNM              float64 `json:"load_kn_m"`
	PrestressKN          float64 `json:"prestress_kn"`
	TemperatureChangeC   float64 `json:"temperature_change_c"`
	DeflectionLimitRatio float64 `json:"deflection_limit_ratio"`
	SafetyFactor         float64 `json:"safety_factor,omitempty"`
	ImportanceFactor     float64 `json:"importance_factor,omitempty"`
}

func (in Input) analysis(diameter string) analysis.Input {
	return analysis.Input{
		Diameter:             diameter,
		SpanM:                in.SpanM,
		Material:             in.Material,
		LoadKNM:              in.LoadKNM,
		PrestressKN:          in.PrestressKN,
		TemperatureChangeC:   in.TemperatureChangeC,
		DeflectionLimitRatio: in.DeflectionLimitRatio,
		SafetyFactor:         in.SafetyFactor,
		ImportanceFactor:     in.ImportanceFactor,
	}
}

type Candidate struct {
	Diameter       string  `json:"diameter"`
	SupportForceKN float64 `json:"support_force_kn,omitempty"`
	Utilization    float64 `json:"utilization,omitempty"`
	DeflectionMM   float64 `json:"deflection_mm,omitempty"`
	OKTension      bool    `json:"ok_tension"`
	OKDeflection   bool    `json:"ok_deflection"`
	Error          string  `json:"error,omitempty"`
}

type Result struct {
	Selected   *analysis.Result `json:"selected,omitempty"`
	Candidates []Candidate      `json:"candidates"`
	Notes      string           `json:"notes"`
}

// Select walks the catalog from the smallest diameter up and stops at the
// first cable that passes the tension and deflection checks.
func Select(ctx context.Context, env *analysis.Env, in Input) (Result, error) {
	keys := env.Catalog.Sorted()
	if len(keys) == 0 {
		return Result{}, ErrNoAdequateCable
	}
	if err := analysis.Validate(in.analysis(keys[0])); err != nil {
		return Result{}, err
	}
	out := Result{Notes: "Smallest catalog diameter passing tension and deflection checks."}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res, err := env.Calculate(in.analysis(key))
		var conv *solver.ConvergenceError
		switch {
		case errors.As(err, &conv):
			out.Candidates = append(out.Candidates, Candidate{Diameter: key, Error: err.Error()})
			continue
		case err != nil:
			return Result{}, fmt.Errorf("diameter %s: %w", key, err)
		}
		out.Candidates = append(out.Candidates, Candidate{
			Diameter:       key,
			SupportForceKN: res.SupportForceKN,
			Utilization:    res.Utilization,
			DeflectionMM:   res.DeflectionMM,
			OKTension:      res.OKTension,
			OKDeflection:   res.OKDeflection,
		})
		if res.OKTension && res.OKDeflection {
			out.Selected = &res
			return out, nil
		}
	}
	return out, ErrNoAdequateCable
}
