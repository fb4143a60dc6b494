package viz

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/threelink/internal/mechanism"
	"github.com/san-kum/threelink/internal/sweep"
)

// PlotSweep draws one unknown against the swept parameter.
func PlotSweep(points []sweep.Point, param string, u mechanism.Unknown, width, height int) (string, error) {
	xs, ys := sweep.Series(points, u)
	if len(ys) == 0 {
		return "", fmt.Errorf("no solvable points to plot")
	}
	caption := fmt.Sprintf("%s [%s] vs %s (%.4g .. %.4g)", u, u.Unit(), param, xs[0], xs[len(xs)-1])
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

// WriteSweepTable prints every point with the requested unknowns.
func WriteSweepTable(w io.Writer, points []sweep.Point, param string, unknowns []mechanism.Unknown) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, param)
	for _, u := range unknowns {
		fmt.Fprintf(tw, "\t%s [%s]", u, u.Unit())
	}
	fmt.Fprintln(tw, "\tmax |residual|")

	for _, p := range points {
		fmt.Fprintf(tw, "%.6g", p.Value)
		if !p.OK() {
			for range unknowns {
				fmt.Fprint(tw, "\t-")
			}
			fmt.Fprintf(tw, "\t%v\n", p.Err)
			continue
		}
		for _, u := range unknowns {
			fmt.Fprintf(tw, "\t%.4f", p.Result.Value(u))
		}
		fmt.Fprintf(tw, "\t%.3e\n", p.Result.Verification.MaxAbs())
	}
	return tw.Flush()
}
