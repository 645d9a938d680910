package evaluate

import "CableCheck/internal/calc/cable"

type Result struct {
	SupportForceKN    float64 `json:"support_force_kn"`
	Utilization       float64 `json:"utilization"`
	OKTension         bool    `json:"ok_tension"`
	DeflectionMM      float64 `json:"deflection_mm"`
	DeflectionLimitMM float64 `json:"deflection_limit_mm"`
	OKDeflection      bool    `json:"ok_deflection"`
}

// Evaluate checks a solved support force H (kN) against the cable's
// allowable load and the deflection limit (limitRatio * span).
// q is in kN/m and l in m.
func Evaluate(c *cable.Cable, H, q, l, limitRatio float64) Result {
	util := cable.Round(H/c.AllowableLoadKN(), 2)

	// Parabolic sag under UDL: f = q l^2 / (8 H), m -> mm
	defl := q * l * l / 8 / H * 1000
	limit := limitRatio * l * 1000

	return Result{
		SupportForceKN:    H,
		Utilization:       util,
		OKTension:         util < 1,
		DeflectionMM:      defl,
		DeflectionLimitMM: limit,
		OKDeflection:      defl < limit,
	}
}
