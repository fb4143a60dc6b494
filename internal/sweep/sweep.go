// Package sweep solves the linkage across a range of one parameter.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/threelink/internal/equilibrium"
	"github.com/san-kum/threelink/internal/mechanism"
)

var ErrInvalidSpec = errors.New("sweep: invalid spec")

type Spec struct {
	Param   string
	From    float64
	To      float64
	Steps   int
	Workers int
	Options equilibrium.Options
}

func (s Spec) Validate() error {
	if _, ok := mechanism.LookupField(s.Param); !ok {
		return fmt.Errorf("%w: %w: %q", ErrInvalidSpec, mechanism.ErrUnknownParameter, s.Param)
	}
	if s.Steps < 2 {
		return fmt.Errorf("%w: need at least 2 steps, got %d", ErrInvalidSpec, s.Steps)
	}
	for _, v := range []float64{s.From, s.To} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounds must be finite", ErrInvalidSpec)
		}
	}
	return nil
}

// Point is one solve of the sweep. Err is set when that parameter value left
// the system unsolvable; the other points are unaffected.
type Point struct {
	Value  float64
	Result *equilibrium.Result
	Err    error
}

func (p Point) OK() bool {
	return p.Err == nil && p.Result != nil
}

// Linspace returns n evenly spaced values from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

// Run solves base with spec.Param set to each grid value. Points come back in
// grid order. Only an invalid spec or a cancelled context fail the sweep.
func Run(ctx context.Context, base mechanism.Params, spec Spec) ([]Point, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	values := Linspace(spec.From, spec.To, spec.Steps)
	points := make([]Point, len(values))

	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := base.With(spec.Param, v)
			if err != nil {
				return err
			}
			res, err := equilibrium.Solve(p, spec.Options)
			points[i] = Point{Value: v, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Series extracts one unknown across the successful points.
func Series(points []Point, u mechanism.Unknown) (xs, ys []float64) {
	for _, p := range points {
		if !p.OK() {
			continue
		}
		xs = append(xs, p.Value)
		ys = append(ys, p.Result.Value(u))
	}
	return xs, ys
}

// Failed counts points whose solve returned an error.
func Failed(points []Point) int {
	n := 0
	for _, p := range points {
		if !p.OK() {
			n++
		}
	}
	return n
}
