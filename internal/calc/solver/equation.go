// Package solver finds the horizontal support force of a prestressed cable
// from the small-sag (parabolic) elastic cable equilibrium:
//
//	H^2 (H - V) + E A H^2 at T - E A q^2 l^2 / 24 = 0
package solver

import (
	"errors"

	"CableCheck/internal/calc/cable"
)

// ErrInvalidCable is returned when an unconfigured cable reaches the solver.
var ErrInvalidCable = errors.New("cable is not configured")

// Inputs are the load conditions of one solve.
type Inputs struct {
	LoadKNM            float64 `json:"load_kn_m"`
	PrestressKN        float64 `json:"prestress_kn"`
	TemperatureChangeC float64 `json:"temperature_change_c"`
}

// Equation holds the parameters of one analysis in consistent kN/m units.
type Equation struct {
	V     float64 // prestress, kN
	Q     float64 // distributed load, kN/m
	T     float64 // temperature change, °C
	EA    float64 // axial stiffness, kN
	Alpha float64 // thermal expansion, 1/°C
	L     float64 // span, m
}

func NewEquation(c *cable.Cable, in Inputs) (Equation, error) {
	if !c.IsValid() {
		return Equation{}, ErrInvalidCable
	}
	m := c.Material()
	E := m.ElasticModulusMPa() * 1000 // kN/m2
	A := c.AreaMM2() / 1e6            // m2
	return Equation{
		V:     in.PrestressKN,
		Q:     in.LoadKNM,
		T:     in.TemperatureChangeC,
		EA:    E * A,
		Alpha: m.ThermalCoefficient(),
		L:     c.SpanM(),
	}, nil
}

// LoadTerm is E A q^2 l^2 / 24.
func (e Equation) LoadTerm() float64 {
	return e.EA * e.Q * e.Q * e.L * e.L / 24
}

func (e Equation) Residual(H float64) float64 {
	return H*H*(H-e.V) + e.EA*H*H*e.Alpha*e.T - e.LoadTerm()
}

func (e Equation) Derivative(H float64) float64 {
	return H*(3*H-2*e.V) + 2*e.EA*H*e.Alpha*e.T
}

// Solution is the solved support force.
type Solution struct {
	SupportForceKN float64 `json:"support_force_kn"`
	Iterations     int     `json:"iterations"`
}

// Solve seeds Newton with the prestress and returns H in kN.
func Solve(c *cable.Cable, in Inputs, opts Options) (Solution, error) {
	eq, err := NewEquation(c, in)
	if err != nil {
		return Solution{}, err
	}
	root, err := Newton(eq.Residual, eq.Derivative, eq.V, opts)
	if err != nil {
		return Solution{}, err
	}
	return Solution{SupportForceKN: root.X, Iterations: root.Iterations}, nil
}
