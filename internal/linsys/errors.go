package linsys

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for building, solving and checking linear systems.
var (
	// ErrUnsolvable indicates a singular coefficient matrix with inconsistent equations.
	ErrUnsolvable = errors.New("linsys: unsolvable system (singular coefficient matrix)")

	// ErrUnderdetermined indicates a consistent system whose solution is not unique.
	ErrUnderdetermined = errors.New("linsys: underdetermined system (solution not unique)")

	// ErrDimensionMismatch indicates equations and unknowns that do not line up.
	ErrDimensionMismatch = errors.New("linsys: dimension mismatch between equations and unknowns")

	// ErrInvalidCoefficient indicates a NaN or Inf coefficient or constant.
	ErrInvalidCoefficient = errors.New("linsys: invalid coefficient (NaN or Inf detected)")

	// ErrToleranceExceeded indicates at least one residual at or above the tolerance.
	ErrToleranceExceeded = errors.New("linsys: residual tolerance exceeded")
)

// SystemError wraps ErrUnsolvable or ErrUnderdetermined with the rank analysis
// that produced it.
type SystemError struct {
	Size          int
	Rank          int
	AugmentedRank int
	Free          []string
	Wrapped       error
}

func (e *SystemError) Error() string {
	msg := fmt.Sprintf("%s: rank %d of %d", e.Wrapped.Error(), e.Rank, e.Size)
	if e.AugmentedRank != e.Rank {
		msg += fmt.Sprintf(", augmented rank %d", e.AugmentedRank)
	}
	if len(e.Free) > 0 {
		msg += ", free: " + strings.Join(e.Free, ", ")
	}
	return msg
}

func (e *SystemError) Unwrap() error {
	return e.Wrapped
}

// ToleranceError lists the equations (1-based) whose residual failed the check.
type ToleranceError struct {
	Failed    []int
	Tolerance float64
}

func (e *ToleranceError) Error() string {
	idx := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		idx[i] = fmt.Sprintf("%d", f)
	}
	return fmt.Sprintf("%s: equation(s) %s not within %g", ErrToleranceExceeded.Error(), strings.Join(idx, ", "), e.Tolerance)
}

func (e *ToleranceError) Unwrap() error {
	return ErrToleranceExceeded
}
