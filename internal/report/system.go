package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/threelink/internal/linsys"
)

// WriteSystem prints the coefficient matrix and right-hand side of A*x = b,
// one row per equation.
func WriteSystem(w io.Writer, sys *linsys.System) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "#\t")
	for _, u := range sys.Unknowns {
		fmt.Fprintf(tw, "%s\t", u)
	}
	fmt.Fprintln(tw, "rhs\tequation\t")

	b := sys.RHS()
	for i, eq := range sys.Equations {
		fmt.Fprintf(tw, "%d\t", i+1)
		for _, c := range eq.Coeffs {
			fmt.Fprintf(tw, "%s\t", strconv.FormatFloat(c, 'g', 6, 64))
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", strconv.FormatFloat(b.AtVec(i), 'g', 6, 64), eq.Label)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\ncondition number (1-norm): %.4g\n", linsys.Cond(sys))
	return err
}
