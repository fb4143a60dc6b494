package linsys_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threelink/internal/linsys"
)

// x + y - 3 = 0, x - y - 1 = 0
func twoByTwo() *linsys.System {
	sys := linsys.NewSystem("x", "y")
	sys.Add("sum", -3, linsys.T(0, 1), linsys.T(1, 1))
	sys.Add("diff", -1, linsys.T(0, 1), linsys.T(1, -1))
	return sys
}

func parallelLines(c2 float64) *linsys.System {
	sys := linsys.NewSystem("x", "y")
	sys.Add("first", -1, linsys.T(0, 1), linsys.T(1, 1))
	sys.Add("second", c2, linsys.T(0, 2), linsys.T(1, 2))
	return sys
}

var _ = Describe("System", func() {
	It("lays out the matrix and right-hand side", func() {
		sys := twoByTwo()
		a := sys.Matrix()
		b := sys.RHS()

		Expect(a.At(0, 0)).To(Equal(1.0))
		Expect(a.At(1, 1)).To(Equal(-1.0))
		Expect(b.AtVec(0)).To(Equal(3.0))
		Expect(b.AtVec(1)).To(Equal(1.0))
	})

	It("sums repeated terms", func() {
		sys := linsys.NewSystem("x")
		sys.Add("twice", 0, linsys.T(0, 1), linsys.T(0, 2))
		Expect(sys.Equations[0].Coeffs).To(Equal([]float64{3}))
	})

	It("panics on a term outside the unknowns", func() {
		sys := linsys.NewSystem("x")
		Expect(func() { sys.Add("bad", 0, linsys.T(1, 1)) }).To(Panic())
	})

	It("rejects NaN and Inf", func() {
		sys := linsys.NewSystem("x")
		sys.Add("nan", math.NaN(), linsys.T(0, 1))
		Expect(sys.Validate()).To(MatchError(linsys.ErrInvalidCoefficient))

		sys = linsys.NewSystem("x")
		sys.Add("inf", 0, linsys.T(0, math.Inf(1)))
		_, err := linsys.NewLU().Solve(sys)
		Expect(err).To(MatchError(linsys.ErrInvalidCoefficient))
	})

	It("finds unknowns by name", func() {
		sys := twoByTwo()
		Expect(sys.Index("y")).To(Equal(1))
		Expect(sys.Index("z")).To(Equal(-1))
	})
})

var _ = Describe("Solvers", func() {
	for _, solver := range []linsys.Solver{linsys.NewLU(), linsys.NewExact()} {
		solver := solver

		Context(solver.Name(), func() {
			It("solves a regular system", func() {
				sol, err := solver.Solve(twoByTwo())
				Expect(err).NotTo(HaveOccurred())
				Expect(sol.Names).To(Equal([]string{"x", "y"}))

				x, ok := sol.Value("x")
				Expect(ok).To(BeTrue())
				Expect(x).To(BeNumerically("~", 2, 1e-12))
				Expect(sol.Map()["y"]).To(BeNumerically("~", 1, 1e-12))
			})

			It("reports inconsistent singular systems as unsolvable", func() {
				_, err := solver.Solve(parallelLines(-3))
				Expect(err).To(MatchError(linsys.ErrUnsolvable))

				var se *linsys.SystemError
				Expect(errors.As(err, &se)).To(BeTrue())
				Expect(se.Rank).To(Equal(1))
				Expect(se.AugmentedRank).To(Equal(2))
				Expect(se.Free).To(BeEmpty())
			})

			It("reports consistent singular systems as underdetermined", func() {
				_, err := solver.Solve(parallelLines(-2))
				Expect(err).To(MatchError(linsys.ErrUnderdetermined))

				var se *linsys.SystemError
				Expect(errors.As(err, &se)).To(BeTrue())
				Expect(se.Free).To(Equal([]string{"y"}))
				Expect(err.Error()).To(ContainSubstring("rank 1 of 2"))
			})

			It("treats an unknown absent from every equation as free", func() {
				sys := linsys.NewSystem("x", "y")
				sys.Add("only x", -4, linsys.T(0, 2))
				sys.Add("only x again", -2, linsys.T(0, 1))
				_, err := solver.Solve(sys)
				Expect(err).To(MatchError(linsys.ErrUnderdetermined))
			})

			It("copes with a nearly singular but exact system", func() {
				e := math.Pow(2, -52)
				sys := linsys.NewSystem("x", "y")
				sys.Add("a", -1, linsys.T(0, 1), linsys.T(1, 1))
				sys.Add("b", -(1 + e), linsys.T(0, 1), linsys.T(1, 1+e))

				sol, err := solver.Solve(sys)
				Expect(err).NotTo(HaveOccurred())
				Expect(sol.Values[0]).To(BeNumerically("~", 0, 1e-12))
				Expect(sol.Values[1]).To(BeNumerically("~", 1, 1e-12))
			})
		})
	}

	It("requires a square system for LU", func() {
		sys := twoByTwo()
		sys.Add("redundant", -4, linsys.T(0, 2), linsys.T(1, 0))
		_, err := linsys.NewLU().Solve(sys)
		Expect(err).To(MatchError(linsys.ErrDimensionMismatch))

		sol, err := linsys.NewExact().Solve(sys)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Values).To(Equal([]float64{2, 1}))
	})

	It("keeps exact values rational", func() {
		sys := linsys.NewSystem("x")
		sys.Add("third", -1, linsys.T(0, 3))

		a, err := linsys.Analyze(sys)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Unique()).To(BeTrue())
		Expect(a.Rat(0).RatString()).To(Equal("1/3"))
		Expect(a.Rat(1)).To(BeNil())
	})

	It("estimates the condition number", func() {
		Expect(linsys.Cond(twoByTwo())).To(BeNumerically("<", 10))
		Expect(math.IsInf(linsys.Cond(parallelLines(-2)), 1)).To(BeTrue())
	})
})
