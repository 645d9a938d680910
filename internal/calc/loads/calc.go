package loads

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Method string

const (
	MethodSLS    Method = "SLS"
	MethodSP20   Method = "SP20"
	MethodEN1990 Method = "EN1990"
)

// Steel wire rope, kN/m3
const DefaultUnitWeightKNM3 = 78.5

type Input struct {
	Method       Method  `json:"method"`
	AreaMM2      float64 `json:"area_mm2"`
	UnitWeight   float64 `json:"unit_weight_kn_m3"`
	PermanentKNM float64 `json:"permanent_kn_m"`
	VariableKNM  float64 `json:"variable_kn_m"`
}

type Result struct {
	SelfWeightKNM float64 `json:"self_weight_kn_m"`
	GammaG        float64 `json:"gamma_g"`
	GammaQ        float64 `json:"gamma_q"`
	DesignLoadKNM float64 `json:"design_load_kn_m"`
	ComboName     string  `json:"combo_name"`
	Notes         string  `json:"notes"`
}

// Calculate combines cable self-weight, permanent and variable line loads
// into the distributed design load q used by the cable analysis.
func Calculate(in Input) (Result, error) {
	if in.AreaMM2 < 0 || in.PermanentKNM < 0 || in.VariableKNM < 0 || in.UnitWeight < 0 {
		return Result{}, fmt.Errorf("invalid input")
	}
	if in.UnitWeight == 0 {
		in.UnitWeight = DefaultUnitWeightKNM3
	}
	self := in.UnitWeight * in.AreaMM2 / 1e6 // kN/m
	gG, gQ, name, ok := factors(in.Method)
	if !ok {
		return Result{}, fmt.Errorf("invalid input: unknown method %q", in.Method)
	}
	design := gG*(self+in.PermanentKNM) + gQ*in.VariableKNM
	if design <= 0 {
		return Result{}, fmt.Errorf("invalid input: no load")
	}
	return Result{
		SelfWeightKNM: self,
		GammaG:        gG,
		GammaQ:        gQ,
		DesignLoadKNM: design,
		ComboName:     name,
		Notes:         "One permanent and one variable line load; self-weight from section area.",
	}, nil
}

// factors returns the partial factors for method; empty means SLS.
func factors(method Method) (gG, gQ float64, name string, ok bool) {
	switch method {
	case MethodSLS, "":
		return 1.0, 1.0, "SLS characteristic", true
	case MethodSP20:
		return 1.05, 1.4, "SP20 basic", true
	case MethodEN1990:
		return 1.35, 1.5, "EN1990 STR", true
	}
	return 0, 0, "", false
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
