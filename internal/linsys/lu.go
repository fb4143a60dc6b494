package linsys

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LU solves square systems by LU factorization with partial pivoting.
//
// When the factorization reports a singular or ill-conditioned matrix the
// system is handed to Analyze, which decides exactly whether it is
// unsolvable, underdetermined, or merely badly scaled. Badly scaled systems
// are answered with the exact solution.
type LU struct{}

func NewLU() *LU {
	return &LU{}
}

func (l *LU) Name() string {
	return "lu"
}

func (l *LU) Solve(sys *System) (Solution, error) {
	if err := sys.Validate(); err != nil {
		return Solution{}, err
	}
	rows, cols := sys.Dims()
	if rows != cols {
		return Solution{}, fmt.Errorf("%w: %d equations, %d unknowns", ErrDimensionMismatch, rows, cols)
	}

	var lu mat.LU
	lu.Factorize(sys.Matrix())

	var x mat.VecDense
	err := lu.SolveVecTo(&x, false, sys.RHS())
	if err == nil && lu.Det() != 0 {
		values := mat.Col(nil, 0, &x)
		if finite(values) {
			return newSolution(sys.Unknowns, values), nil
		}
	}
	var cond mat.Condition
	if err != nil && !errors.As(err, &cond) {
		return Solution{}, err
	}

	a, err := Analyze(sys)
	if err != nil {
		return Solution{}, err
	}
	if err := a.Err(); err != nil {
		return Solution{}, err
	}
	return newSolution(sys.Unknowns, a.Float64s()), nil
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Cond returns the estimated 1-norm condition number of the coefficient
// matrix; +Inf for a singular or non-square matrix.
func Cond(sys *System) float64 {
	rows, cols := sys.Dims()
	if rows != cols || rows == 0 {
		return math.Inf(1)
	}
	var lu mat.LU
	lu.Factorize(sys.Matrix())
	if lu.Det() == 0 {
		return math.Inf(1)
	}
	return lu.Cond()
}
