package linsys_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/threelink/internal/linsys"
)

var _ = Describe("Verify", func() {
	var sys *linsys.System

	BeforeEach(func() {
		sys = twoByTwo()
	})

	It("accepts the solver's own solution", func() {
		sol, err := linsys.NewLU().Solve(sys)
		Expect(err).NotTo(HaveOccurred())

		v, err := linsys.Verify(sys, sol, linsys.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Residuals).To(HaveLen(2))
		Expect(v.AllSatisfied()).To(BeTrue())
		Expect(v.Err()).NotTo(HaveOccurred())
		Expect(v.MaxAbs()).To(BeNumerically("<", linsys.DefaultTolerance))

		for i, r := range v.Residuals {
			Expect(r.Index).To(Equal(i + 1))
			Expect(r.Label).To(Equal(sys.Equations[i].Label))
		}
	})

	It("flags every failing equation without stopping", func() {
		sol := linsys.Solution{Names: sys.Unknowns, Values: []float64{2.5, 1}}

		v, err := linsys.Verify(sys, sol, linsys.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.AllSatisfied()).To(BeFalse())
		Expect(v.Failed()).To(HaveLen(2))
		Expect(v.Residuals[0].Value).To(BeNumerically("~", 0.5, 1e-15))
		Expect(v.Residuals[1].Value).To(BeNumerically("~", 0.5, 1e-15))

		err = v.Err()
		Expect(err).To(MatchError(linsys.ErrToleranceExceeded))
		var te *linsys.ToleranceError
		Expect(errors.As(err, &te)).To(BeTrue())
		Expect(te.Failed).To(Equal([]int{1, 2}))
	})

	It("uses an absolute bound regardless of equation scale", func() {
		big := linsys.NewSystem("x")
		big.Add("large", -1e12, linsys.T(0, 1e12))
		sol := linsys.Solution{Names: big.Unknowns, Values: []float64{1 + 1e-15}}

		v, err := linsys.Verify(big, sol, linsys.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		// Relative error is ~1e-15, yet the absolute residual is ~1e-3.
		Expect(v.Residuals[0].Satisfied).To(BeFalse())
		Expect(v.Residuals[0].Scaled()).To(BeNumerically("<", 1e-14))
	})

	It("never passes a NaN residual", func() {
		sol := linsys.Solution{Names: sys.Unknowns, Values: []float64{math.NaN(), 1}}
		v, err := linsys.Verify(sys, sol, linsys.DefaultTolerance)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Residuals[0].Satisfied).To(BeFalse())
	})

	It("falls back to the default tolerance", func() {
		sol := linsys.Solution{Names: sys.Unknowns, Values: []float64{2, 1}}
		v, err := linsys.Verify(sys, sol, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Tolerance).To(Equal(linsys.DefaultTolerance))
	})

	It("rejects a solution of the wrong size", func() {
		sol := linsys.Solution{Names: []string{"x"}, Values: []float64{2}}
		_, err := linsys.Verify(sys, sol, linsys.DefaultTolerance)
		Expect(err).To(MatchError(linsys.ErrDimensionMismatch))
	})
})
