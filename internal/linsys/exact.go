package linsys

import "math/big"

// Analysis is the outcome of exact Gauss-Jordan elimination on [A|b].
type Analysis struct {
	Size          int
	Rank          int
	AugmentedRank int
	// Pivots holds the pivot column of each of the first Rank rows.
	Pivots []int
	// Free holds the columns without a pivot.
	Free []int

	names  []string
	values []*big.Rat
}

// Analyze reduces the system to reduced row echelon form in exact rational
// arithmetic. Every float64 coefficient is converted without rounding, so the
// rank it reports is the rank of the matrix the float64 values describe.
func Analyze(sys *System) (*Analysis, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	rows, cols := sys.Dims()

	m := make([][]*big.Rat, rows)
	for i, eq := range sys.Equations {
		m[i] = make([]*big.Rat, cols+1)
		for j, c := range eq.Coeffs {
			m[i][j] = new(big.Rat).SetFloat64(c)
		}
		m[i][cols] = new(big.Rat).SetFloat64(-eq.Const)
	}

	r := 0
	pivots := make([]int, 0, cols)
	tmp := new(big.Rat)
	for c := 0; c < cols && r < rows; c++ {
		p := -1
		for i := r; i < rows; i++ {
			if m[i][c].Sign() != 0 {
				p = i
				break
			}
		}
		if p < 0 {
			continue
		}
		m[r], m[p] = m[p], m[r]

		inv := new(big.Rat).Inv(m[r][c])
		for j := c; j <= cols; j++ {
			m[r][j].Mul(m[r][j], inv)
		}
		for i := 0; i < rows; i++ {
			if i == r || m[i][c].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(m[i][c])
			for j := c; j <= cols; j++ {
				tmp.Mul(f, m[r][j])
				m[i][j].Sub(m[i][j], tmp)
			}
		}
		pivots = append(pivots, c)
		r++
	}

	a := &Analysis{
		Size:          cols,
		Rank:          r,
		AugmentedRank: r,
		Pivots:        pivots,
		names:         sys.Unknowns,
	}
	for i := r; i < rows; i++ {
		if m[i][cols].Sign() != 0 {
			a.AugmentedRank = r + 1
			break
		}
	}

	isPivot := make([]bool, cols)
	for _, c := range pivots {
		isPivot[c] = true
	}
	for c := 0; c < cols; c++ {
		if !isPivot[c] {
			a.Free = append(a.Free, c)
		}
	}

	if a.Unique() {
		a.values = make([]*big.Rat, cols)
		for i, c := range pivots {
			a.values[c] = m[i][cols]
		}
	}
	return a, nil
}

func (a *Analysis) Consistent() bool {
	return a.AugmentedRank == a.Rank
}

func (a *Analysis) Unique() bool {
	return a.Consistent() && a.Rank == a.Size
}

// Err returns nil for a uniquely solvable system, otherwise a *SystemError
// wrapping ErrUnsolvable or ErrUnderdetermined.
func (a *Analysis) Err() error {
	if a.Unique() {
		return nil
	}
	se := &SystemError{
		Size:          a.Size,
		Rank:          a.Rank,
		AugmentedRank: a.AugmentedRank,
		Wrapped:       ErrUnsolvable,
	}
	if a.Consistent() {
		se.Wrapped = ErrUnderdetermined
		for _, c := range a.Free {
			se.Free = append(se.Free, a.names[c])
		}
	}
	return se
}

// Rat returns the exact value of unknown i; nil unless the system is unique.
func (a *Analysis) Rat(i int) *big.Rat {
	if a.values == nil || i < 0 || i >= len(a.values) {
		return nil
	}
	return new(big.Rat).Set(a.values[i])
}

func (a *Analysis) Float64s() []float64 {
	if a.values == nil {
		return nil
	}
	out := make([]float64, len(a.values))
	for i, v := range a.values {
		out[i], _ = v.Float64()
	}
	return out
}

// Exact solves by rational Gauss-Jordan elimination.
type Exact struct{}

func NewExact() *Exact {
	return &Exact{}
}

func (e *Exact) Name() string {
	return "exact"
}

func (e *Exact) Solve(sys *System) (Solution, error) {
	a, err := Analyze(sys)
	if err != nil {
		return Solution{}, err
	}
	if err := a.Err(); err != nil {
		return Solution{}, err
	}
	return newSolution(sys.Unknowns, a.Float64s()), nil
}
