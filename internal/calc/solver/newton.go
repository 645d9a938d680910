package solver

import (
	"fmt"
	"math"
)

// Options controls the Newton-Raphson iteration.
type Options struct {
	// Tolerance bounds both the absolute residual and the step size.
	Tolerance float64
	// MaxIterations caps the number of Newton steps.
	MaxIterations int
	// DerivativeThreshold is the smallest |f'| accepted before the step is
	// treated as a division by zero.
	DerivativeThreshold float64
}

func DefaultOptions() Options {
	return Options{
		Tolerance:           1e-4,
		MaxIterations:       100,
		DerivativeThreshold: 1e-9,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.DerivativeThreshold <= 0 {
		o.DerivativeThreshold = d.DerivativeThreshold
	}
	return o
}

// Reason classifies a convergence failure.
type Reason string

const (
	ReasonZeroDerivative Reason = "zero derivative"
	ReasonNonFinite      Reason = "non-finite iterate"
	ReasonMaxIterations  Reason = "iteration limit reached"
)

// ConvergenceError is returned when the iteration cannot produce a root.
// Last is the final iterate, for diagnostics only.
type ConvergenceError struct {
	Reason     Reason
	Iterations int
	Last       float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("newton-raphson failed to converge: %s after %d iterations (last value %g)", e.Reason, e.Iterations, e.Last)
}

// Root is a converged Newton result.
type Root struct {
	X          float64
	Iterations int
}

// Newton finds a root of f starting at x0 using the analytic derivative df.
//
//	x[n+1] = x[n] - f(x[n]) / f'(x[n])
//
// It stops when |f(x)| <= tol or |step| <= tol.
func Newton(f, df func(float64) float64, x0 float64, opts Options) (Root, error) {
	opts = opts.withDefaults()
	x := x0
	for i := 0; i < opts.MaxIterations; i++ {
		fx := f(x)
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return Root{}, &ConvergenceError{Reason: ReasonNonFinite, Iterations: i, Last: x}
		}
		if math.Abs(fx) <= opts.Tolerance {
			return Root{X: x, Iterations: i}, nil
		}
		dfx := df(x)
		if math.Abs(dfx) <= opts.DerivativeThreshold || math.IsNaN(dfx) {
			return Root{}, &ConvergenceError{Reason: ReasonZeroDerivative, Iterations: i, Last: x}
		}
		step := fx / dfx
		next := x - step
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return Root{}, &ConvergenceError{Reason: ReasonNonFinite, Iterations: i + 1, Last: x}
		}
		if math.Abs(step) <= opts.Tolerance {
			return Root{X: next, Iterations: i + 1}, nil
		}
		x = next
	}
	return Root{}, &ConvergenceError{Reason: ReasonMaxIterations, Iterations: opts.MaxIterations, Last: x}
}
