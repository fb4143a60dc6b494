package linsys

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the absolute residual bound used by Verify.
const DefaultTolerance = 1e-10

// Residual is the value of one equation with the solution substituted back in.
type Residual struct {
	Index     int // 1-based position of the equation
	Label     string
	Value     float64
	Magnitude float64
	Satisfied bool
}

// Scaled returns |Value| relative to the equation's term magnitude. It is
// informational only; Satisfied is decided by the absolute tolerance.
func (r Residual) Scaled() float64 {
	if r.Magnitude == 0 {
		return math.Abs(r.Value)
	}
	return math.Abs(r.Value) / r.Magnitude
}

type Verification struct {
	Tolerance float64
	Residuals []Residual
}

// Verify substitutes sol into every equation of sys. All equations are
// checked; a failing equation never stops the others. The returned error is
// only for a solution that does not fit the system.
func Verify(sys *System, sol Solution, tol float64) (*Verification, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	if len(sol.Values) != len(sys.Unknowns) {
		return nil, fmt.Errorf("%w: solution has %d values, system has %d unknowns",
			ErrDimensionMismatch, len(sol.Values), len(sys.Unknowns))
	}
	if tol <= 0 || math.IsNaN(tol) {
		tol = DefaultTolerance
	}

	v := &Verification{Tolerance: tol, Residuals: make([]Residual, len(sys.Equations))}
	for i, eq := range sys.Equations {
		r := eq.Eval(sol.Values)
		v.Residuals[i] = Residual{
			Index:     i + 1,
			Label:     eq.Label,
			Value:     r,
			Magnitude: eq.Magnitude(sol.Values),
			Satisfied: math.Abs(r) < tol,
		}
	}
	return v, nil
}

func (v *Verification) AllSatisfied() bool {
	return len(v.Failed()) == 0
}

func (v *Verification) Failed() []Residual {
	var out []Residual
	for _, r := range v.Residuals {
		if !r.Satisfied {
			out = append(out, r)
		}
	}
	return out
}

// MaxAbs returns the largest absolute residual.
func (v *Verification) MaxAbs() float64 {
	if len(v.Residuals) == 0 {
		return 0
	}
	abs := make([]float64, len(v.Residuals))
	for i, r := range v.Residuals {
		abs[i] = math.Abs(r.Value)
	}
	return floats.Max(abs)
}

// Err returns a *ToleranceError naming the failed equations, or nil.
func (v *Verification) Err() error {
	failed := v.Failed()
	if len(failed) == 0 {
		return nil
	}
	te := &ToleranceError{Tolerance: v.Tolerance}
	for _, r := range failed {
		te.Failed = append(te.Failed, r.Index)
	}
	return te
}
