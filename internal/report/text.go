package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/threelink/internal/equilibrium"
	"github.com/san-kum/threelink/internal/linsys"
	"github.com/san-kum/threelink/internal/mechanism"
)

const (
	passMarker = "✓ SATISFIED"
	failMarker = "✗ NOT SATISFIED"
)

var sections = []struct {
	title string
	kind  mechanism.Kind
}{
	{"Angular accelerations", mechanism.Angular},
	{"Linear accelerations", mechanism.Linear},
	{"Forces", mechanism.Force},
}

// FormatQuantity renders a solved value to four decimals with its unit.
func FormatQuantity(u mechanism.Unknown, v float64) string {
	return fmt.Sprintf("%-8s = %12.4f %s", u, v, u.Unit())
}

// FormatResidual renders one verification line with the residual in
// scientific notation.
func FormatResidual(s Styles, r linsys.Residual) string {
	marker := s.Pass.Render(passMarker)
	if !r.Satisfied {
		marker = s.Fail.Render(failMarker)
	}
	return fmt.Sprintf("Equation %d (%s): %s  residual = %.3e", r.Index, r.Label, marker, r.Value)
}

// WriteText writes the human-readable report: parameters, solution and the
// per-equation verification.
func WriteText(w io.Writer, res *equilibrium.Result) error {
	s := NewStyles(lipgloss.NewRenderer(w))
	var b strings.Builder

	b.WriteString(s.Title.Render("Three-arm linkage equilibrium") + "\n")
	b.WriteString(s.Separator(48) + "\n\n")

	writeParams(&b, s, res.Params)
	b.WriteString("\n")
	writeSolution(&b, s, res)
	b.WriteString("\n")
	writeVerification(&b, s, res.Verification)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeParams(b *strings.Builder, s Styles, p mechanism.Params) {
	b.WriteString(s.Section.Render("Parameters") + "\n")
	groups := []struct {
		arm   int
		title string
	}{{3, "arm 3"}, {2, "arm 2"}, {1, "arm 1"}, {0, "shared"}}

	for _, g := range groups {
		b.WriteString("  " + s.Subtle.Render(g.title) + "\n")
		for _, f := range mechanism.Fields() {
			if f.Arm != g.arm {
				continue
			}
			v, _ := p.Get(f.Name)
			fmt.Fprintf(b, "    %s %s %s\n",
				s.Label.Render(fmt.Sprintf("%-8s", f.Name)),
				s.Value.Render(fmt.Sprintf("%12g", v)),
				f.Unit)
		}
	}
}

func writeSolution(b *strings.Builder, s Styles, res *equilibrium.Result) {
	b.WriteString(s.Section.Render(fmt.Sprintf("Solution (%s)", res.Solver)) + "\n")
	for _, sec := range sections {
		b.WriteString("  " + s.Subtle.Render(sec.title) + "\n")
		for _, u := range mechanism.ByKind(sec.kind) {
			b.WriteString("    " + FormatQuantity(u, res.Value(u)) + "\n")
		}
	}
}

func writeVerification(b *strings.Builder, s Styles, v *linsys.Verification) {
	b.WriteString(s.Section.Render(fmt.Sprintf("Verification (|residual| < %g)", v.Tolerance)) + "\n")
	for _, r := range v.Residuals {
		b.WriteString("  " + FormatResidual(s, r) + "\n")
	}

	failed := len(v.Failed())
	if failed == 0 {
		fmt.Fprintf(b, "\n%s\n", s.Pass.Render(fmt.Sprintf("All %d equations satisfied.", len(v.Residuals))))
		return
	}
	fmt.Fprintf(b, "\n%s\n", s.Fail.Render(fmt.Sprintf("%d of %d equations NOT SATISFIED.", failed, len(v.Residuals))))
	// Absolute tolerance: a large scaled residual points at modelling, a tiny one at precision.
	for _, r := range v.Failed() {
		fmt.Fprintf(b, "  %s\n", s.Subtle.Render(fmt.Sprintf("equation %d scaled residual %.3e", r.Index, scaled(r))))
	}
}

func scaled(r linsys.Residual) float64 {
	v := r.Scaled()
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}
