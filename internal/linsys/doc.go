// Package linsys provides square linear systems of labelled equations and the
// solvers that work on them.
//
// Each [Equation] is stored in residual form, sum(coeff*x) + const = 0, so the
// value of an equation at a solution is its residual.
//
//   - [System]: named unknowns and labelled equations
//   - [Solver]: interface implemented by [LU] and [Exact]
//   - [Analyze]: exact rank analysis over rationals
//   - [Verify]: per-equation residual check against an absolute tolerance
//
// # Singular systems
//
// A singular coefficient matrix is never reported as a solution. Both solvers
// classify it by exact rank: rank(A) < rank([A|b]) gives [ErrUnsolvable], and a
// consistent system of deficient rank gives [ErrUnderdetermined] with the free
// unknowns listed in the [SystemError].
//
// # Example
//
//	sys := linsys.NewSystem("x", "y")
//	sys.Add("sum", -3, linsys.T(0, 1), linsys.T(1, 1))
//	sys.Add("diff", -1, linsys.T(0, 1), linsys.T(1, -1))
//	sol, err := linsys.NewLU().Solve(sys)
package linsys
