package recommend

import (
	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/evaluate"
	"CableCheck/internal/calc/solver"
)

type Result struct {
	Diameter          string  `json:"diameter"`
	RequiredForceKN   float64 `json:"required_force_kn"`
	MinPrestressKN    float64 `json:"min_prestress_kn"`
	PrestressRequired bool    `json:"prestress_required"`
	AllowableLoadKN   float64 `json:"allowable_load_kn"`
	Utilization       float64 `json:"utilization"`
	Feasible          bool    `json:"feasible"`
	Notes             string  `json:"notes"`
}

// Prestress returns the smallest prestress V for which the solved support
// force brings the midspan sag down to the deflection limit. The input's own
// prestress is ignored.
func Prestress(env *analysis.Env, in analysis.Input) (Result, error) {
	probe := in
	probe.PrestressKN = 1 // unknown here
	if err := analysis.Validate(probe); err != nil {
		return Result{}, err
	}
	c, err := env.Cable(in)
	if err != nil {
		return Result{}, err
	}
	eq, err := solver.NewEquation(c, solver.Inputs{LoadKNM: in.LoadKNM, TemperatureChangeC: in.TemperatureChangeC})
	if err != nil {
		return Result{}, err
	}

	// sag q l^2 / 8H equal to ratio * l
	h := in.LoadKNM * eq.L * eq.L / (8 * in.DeflectionLimitRatio * eq.L)
	// equilibrium solved for V at H = h
	v := h + eq.EA*eq.Alpha*eq.T - eq.LoadTerm()/(h*h)

	ev := evaluate.Evaluate(c, h, in.LoadKNM, eq.L, in.DeflectionLimitRatio)
	res := Result{
		Diameter:          c.Key(),
		RequiredForceKN:   h,
		MinPrestressKN:    v,
		PrestressRequired: v > 0,
		AllowableLoadKN:   c.AllowableLoadKN(),
		Utilization:       ev.Utilization,
		Feasible:          ev.OKTension,
		Notes:             "Prestress at which the sag equals the deflection limit.",
	}
	if v <= 0 {
		res.MinPrestressKN = 0
		res.Notes = "Cable stiffness alone keeps the sag within the limit; no prestress needed."
	}
	return res, nil
}
