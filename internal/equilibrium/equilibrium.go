// Package equilibrium runs the build, solve and verify pipeline for one set
// of linkage parameters.
package equilibrium

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/threelink/internal/linsys"
	"github.com/san-kum/threelink/internal/mechanism"
)

const DefaultSolver = "lu"

type Options struct {
	Solver    string
	Tolerance float64
	Logger    *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Solver:    DefaultSolver,
		Tolerance: linsys.DefaultTolerance,
	}
}

// Result holds everything one run produced. It is not modified after Solve returns.
type Result struct {
	Params       mechanism.Params
	Solver       string
	System       *linsys.System
	Solution     linsys.Solution
	Verification *linsys.Verification
}

func (r *Result) Value(u mechanism.Unknown) float64 {
	return r.Solution.Values[u]
}

func (r *Result) Residual(eq int) linsys.Residual {
	return r.Verification.Residuals[eq]
}

// Solve builds the equations for p, solves them and checks the solution.
// Solver failures abort with no partial result. Residuals above the tolerance
// do not; they are recorded in Result.Verification.
func Solve(p mechanism.Params, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Solver == "" {
		opts.Solver = DefaultSolver
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = linsys.DefaultTolerance
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	solver, err := NewRegistry().GetSolver(opts.Solver)
	if err != nil {
		return nil, err
	}

	sys := mechanism.Build(p)
	rows, cols := sys.Dims()
	log.Debug("built equations", "equations", rows, "unknowns", cols)

	sol, err := solver.Solve(sys)
	if err != nil {
		log.Debug("solve failed", "solver", solver.Name(), "err", err)
		return nil, fmt.Errorf("solve with %s: %w", solver.Name(), err)
	}
	log.Debug("solved", "solver", solver.Name(), "cond", linsys.Cond(sys))

	ver, err := linsys.Verify(sys, sol, opts.Tolerance)
	if err != nil {
		return nil, err
	}
	for _, r := range ver.Failed() {
		log.Warn("equation not satisfied", "equation", r.Index, "label", r.Label, "residual", r.Value, "tolerance", ver.Tolerance)
	}
	log.Debug("verified", "max_residual", ver.MaxAbs(), "satisfied", ver.AllSatisfied())

	return &Result{
		Params:       p,
		Solver:       solver.Name(),
		System:       sys,
		Solution:     sol,
		Verification: ver,
	}, nil
}
