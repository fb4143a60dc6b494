package linsys

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Term is one coefficient of an equation, addressed by unknown index.
type Term struct {
	Var   int
	Coeff float64
}

// T is shorthand for a Term.
func T(v int, coeff float64) Term {
	return Term{Var: v, Coeff: coeff}
}

// Equation is the linear expression sum(Coeffs[i]*x[i]) + Const, constrained to zero.
type Equation struct {
	Label  string
	Coeffs []float64
	Const  float64
}

// Eval returns the expression value at x, i.e. the residual when x is a solution.
func (e Equation) Eval(x []float64) float64 {
	return floats.Dot(e.Coeffs, x) + e.Const
}

// Magnitude is the sum of absolute term values at x. It is the natural scale
// against which Eval(x) should be read.
func (e Equation) Magnitude(x []float64) float64 {
	terms := make([]float64, len(e.Coeffs))
	floats.MulTo(terms, e.Coeffs, x)
	return floats.Norm(terms, 1) + math.Abs(e.Const)
}

// Involves reports whether the unknown at index v has a non-zero coefficient.
func (e Equation) Involves(v int) bool {
	return v >= 0 && v < len(e.Coeffs) && e.Coeffs[v] != 0
}

func (e Equation) IsValid() bool {
	if math.IsNaN(e.Const) || math.IsInf(e.Const, 0) {
		return false
	}
	for _, c := range e.Coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// System is an ordered list of equations over a fixed, ordered set of unknowns.
type System struct {
	Unknowns  []string
	Equations []Equation
}

func NewSystem(unknowns ...string) *System {
	names := make([]string, len(unknowns))
	copy(names, unknowns)
	return &System{Unknowns: names}
}

// Add appends an equation. Terms naming the same unknown are summed.
func (s *System) Add(label string, constant float64, terms ...Term) {
	coeffs := make([]float64, len(s.Unknowns))
	for _, t := range terms {
		if t.Var < 0 || t.Var >= len(coeffs) {
			panic(fmt.Sprintf("linsys: term index %d out of range for %d unknowns", t.Var, len(coeffs)))
		}
		coeffs[t.Var] += t.Coeff
	}
	s.Equations = append(s.Equations, Equation{Label: label, Coeffs: coeffs, Const: constant})
}

func (s *System) Dims() (rows, cols int) {
	return len(s.Equations), len(s.Unknowns)
}

func (s *System) Index(name string) int {
	for i, u := range s.Unknowns {
		if u == name {
			return i
		}
	}
	return -1
}

// Validate checks that every equation has one coefficient per unknown and
// that nothing is NaN or Inf.
func (s *System) Validate() error {
	if len(s.Unknowns) == 0 {
		return fmt.Errorf("%w: no unknowns", ErrDimensionMismatch)
	}
	for i, eq := range s.Equations {
		if len(eq.Coeffs) != len(s.Unknowns) {
			return fmt.Errorf("%w: equation %d has %d coefficients, want %d",
				ErrDimensionMismatch, i+1, len(eq.Coeffs), len(s.Unknowns))
		}
		if !eq.IsValid() {
			return fmt.Errorf("%w: equation %d (%s)", ErrInvalidCoefficient, i+1, eq.Label)
		}
	}
	return nil
}

// Matrix returns the coefficient matrix A of A*x = b.
func (s *System) Matrix() *mat.Dense {
	rows, cols := s.Dims()
	a := mat.NewDense(rows, cols, nil)
	for i, eq := range s.Equations {
		a.SetRow(i, eq.Coeffs)
	}
	return a
}

// RHS returns b of A*x = b, which is the negated constant of each equation.
func (s *System) RHS() *mat.VecDense {
	b := mat.NewVecDense(len(s.Equations), nil)
	for i, eq := range s.Equations {
		b.SetVec(i, -eq.Const)
	}
	return b
}

// Solution maps each unknown, in system order, to its solved value.
type Solution struct {
	Names  []string
	Values []float64
}

func newSolution(names []string, values []float64) Solution {
	n := make([]string, len(names))
	copy(n, names)
	return Solution{Names: n, Values: values}
}

func (s Solution) Value(name string) (float64, bool) {
	for i, n := range s.Names {
		if n == name {
			return s.Values[i], true
		}
	}
	return 0, false
}

func (s Solution) Map() map[string]float64 {
	m := make(map[string]float64, len(s.Names))
	for i, n := range s.Names {
		m[n] = s.Values[i]
	}
	return m
}

// Solver finds the unique solution of a system or explains why there is none.
type Solver interface {
	Name() string
	Solve(sys *System) (Solution, error)
}
