package finance

import (
	"fmt"
	"math"
)

// SolverParams bounds the IRR secant iteration.
type SolverParams struct {
	// Tolerance is the |NPV| below which a rate is accepted.
	Tolerance float64
	// MaxIterations caps the number of secant steps.
	MaxIterations int
	// DivergenceCeiling is the per-period rate past which the iteration is
	// declared divergent (1000 = 100,000%).
	DivergenceCeiling float64
}

const (
	defaultTolerance         = 1e-6
	defaultMaxIterations     = 1000
	defaultDivergenceCeiling = 1000
)

// DefaultSolver returns the stock solver bounds.
func DefaultSolver() SolverParams {
	return SolverParams{
		Tolerance:         defaultTolerance,
		MaxIterations:     defaultMaxIterations,
		DivergenceCeiling: defaultDivergenceCeiling,
	}
}

// Validate reports whether the parameters can drive a solve.
func (p SolverParams) Validate() error {
	if !(p.Tolerance > 0) {
		return fmt.Errorf("solver tolerance must be > 0, got %g", p.Tolerance)
	}
	if p.MaxIterations <= 0 {
		return fmt.Errorf("solver max iterations must be > 0, got %d", p.MaxIterations)
	}
	if !(p.DivergenceCeiling > 0) {
		return fmt.Errorf("solver divergence ceiling must be > 0, got %g", p.DivergenceCeiling)
	}
	return nil
}

// secant finds a root of f starting from the estimates r0 and r1.
//
//	r_next = r1 - f(r1) * (r1 - r0) / (f(r1) - f(r0))
//
// It returns +Inf with ErrDivergent once an estimate passes the ceiling.
func secant(f func(float64) float64, r0, r1 float64, p SolverParams) (float64, int, error) {
	f0 := f(r0)
	f1 := f(r1)

	for iter := 0; ; iter++ {
		if math.IsNaN(f1) || math.IsInf(f1, 0) {
			return r1, iter, fmt.Errorf("secant: non-finite NPV at rate %g: %w", r1, ErrNonConvergence)
		}
		if math.Abs(f1) < p.Tolerance {
			return r1, iter, nil
		}
		if iter >= p.MaxIterations {
			return r1, iter, fmt.Errorf("secant: did not converge after %d iterations: %w", p.MaxIterations, ErrNonConvergence)
		}

		denom := f1 - f0
		if denom == 0 {
			return r1, iter, fmt.Errorf("secant: flat NPV between rates %g and %g: %w", r0, r1, ErrNonConvergence)
		}
		next := r1 - f1*(r1-r0)/denom

		r0, f0 = r1, f1
		r1 = next
		if r1 > p.DivergenceCeiling {
			return math.Inf(1), iter + 1, ErrDivergent
		}
		f1 = f(r1)
	}
}
