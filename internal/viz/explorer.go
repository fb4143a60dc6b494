package viz

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/threelink/internal/equilibrium"
	"github.com/san-kum/threelink/internal/mechanism"
	"github.com/san-kum/threelink/internal/report"
)

const historyCapacity = 60

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

// Explorer is a Bubble Tea model that re-solves the linkage every time a
// parameter changes.
type Explorer struct {
	base    mechanism.Params
	params  mechanism.Params
	fields  []mechanism.Field
	opts    equilibrium.Options
	cursor  int
	watch   mechanism.Unknown
	result  *equilibrium.Result
	err     error
	editing bool
	editBuf string
	history []float64
	styles  report.Styles
}

func NewExplorer(p mechanism.Params, opts equilibrium.Options) Explorer {
	e := Explorer{
		base:   p,
		params: p,
		fields: mechanism.Fields(),
		opts:   opts,
		watch:  mechanism.AlphaB,
		styles: report.DefaultStyles,
	}
	e.resolve()
	return e
}

func (e Explorer) Params() mechanism.Params { return e.params }
func (e Explorer) Result() *equilibrium.Result { return e.result }
func (e Explorer) Err() error { return e.err }
func (e Explorer) Selected() string { return e.fields[e.cursor].Name }
func (e Explorer) Watched() mechanism.Unknown { return e.watch }
func (e Explorer) Editing() bool { return e.editing }
func (e Explorer) History() []float64 { return e.history }
func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}
	if e.editing {
		return e.editKey(key), nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.fields)-1 {
			e.cursor++
		}
	case "left", "h":
		e.nudge(-1)
	case "right", "l":
		e.nudge(1)
	case "enter":
		v, _ := e.params.Get(e.Selected())
		e.editing, e.editBuf = true, strconv.FormatFloat(v, 'g', -1, 64)
	case "tab":
		e.watch = (e.watch + 1) % mechanism.NumUnknowns
		e.history = nil
		e.record()
	case "r":
		e.params = e.base
		e.resolve()
	}
	return e, nil
}

func (e Explorer) editKey(key tea.KeyMsg) Explorer {
	switch key.String() {
	case "enter":
		v, err := strconv.ParseFloat(e.editBuf, 64)
		e.editing, e.editBuf = false, ""
		if err != nil {
			e.err = fmt.Errorf("parameter %s: %w", e.Selected(), err)
			return e
		}
		e.set(v)
	case "esc":
		e.editing, e.editBuf = false, ""
	case "backspace":
		if len(e.editBuf) > 0 {
			e.editBuf = e.editBuf[:len(e.editBuf)-1]
		}
	default:
		for _, c := range key.Runes {
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' || c == '+' {
				e.editBuf += string(c)
			}
		}
	}
	return e
}

// nudge moves the selected value by 1%, or by 0.1 when it is zero.
func (e *Explorer) nudge(dir float64) {
	v, _ := e.params.Get(e.Selected())
	step := math.Abs(v) * 0.01
	if v == 0 {
		step = 0.1
	}
	e.set(v + dir*step)
}

func (e *Explorer) set(v float64) {
	p, err := e.params.With(e.Selected(), v)
	if err != nil {
		e.err = err
		return
	}
	e.params = p
	e.resolve()
}

func (e *Explorer) resolve() {
	e.result, e.err = equilibrium.Solve(e.params, e.opts)
	e.record()
}

func (e *Explorer) record() {
	if e.result == nil {
		return
	}
	e.history = append(e.history, e.result.Value(e.watch))
	if len(e.history) > historyCapacity {
		e.history = e.history[len(e.history)-historyCapacity:]
	}
}

func (e Explorer) View() string {
	s := e.styles

	var left strings.Builder
	left.WriteString(s.Section.Render("Parameters") + "\n")
	for i, f := range e.fields {
		v, _ := e.params.Get(f.Name)
		val := fmt.Sprintf("%12g", v)
		if i == e.cursor && e.editing {
			val = fmt.Sprintf("%12s", e.editBuf+"▏")
		}
		line := fmt.Sprintf("%-8s %s %s", f.Name, val, f.Unit)
		if i == e.cursor {
			left.WriteString(cursorStyle.Render("▸ "+line) + "\n")
		} else {
			left.WriteString("  " + line + "\n")
		}
	}

	var right strings.Builder
	right.WriteString(s.Section.Render("Solution") + "\n")
	switch {
	case e.err != nil:
		right.WriteString(errStyle.Render(wrap(e.err.Error(), 48)) + "\n")
	case e.result != nil:
		for _, u := range mechanism.Unknowns() {
			line := report.FormatQuantity(u, e.result.Value(u))
			if u == e.watch {
				line = s.Value.Render(line)
			}
			right.WriteString(line + "\n")
		}
		right.WriteString("\n")
		ver := e.result.Verification
		if ver.AllSatisfied() {
			right.WriteString(s.Pass.Render(fmt.Sprintf("all %d equations satisfied", len(ver.Residuals))))
		} else {
			right.WriteString(s.Fail.Render(fmt.Sprintf("%d equations NOT SATISFIED", len(ver.Failed()))))
		}
		right.WriteString(s.Subtle.Render(fmt.Sprintf("  max |r| %.2e", ver.MaxAbs())) + "\n")
	}
	if len(e.history) > 1 {
		right.WriteString("\n" + asciigraph.Plot(e.history,
			asciigraph.Height(5),
			asciigraph.Width(40),
			asciigraph.Caption(fmt.Sprintf("%s [%s]", e.watch, e.watch.Unit())),
		) + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Panel.Render(left.String()),
		s.Panel.Render(right.String()),
	)
	help := helpStyle.Render("↑/↓ select  ←/→ ±1%  enter edit  tab watch  r reset  q quit")
	return s.Title.Render("threelink explorer") + "\n" + body + "\n" + help + "\n"
}

func wrap(text string, width int) string {
	var out strings.Builder
	col := 0
	for _, word := range strings.Fields(text) {
		if col > 0 && col+len(word)+1 > width {
			out.WriteString("\n")
			col = 0
		} else if col > 0 {
			out.WriteString(" ")
			col++
		}
		out.WriteString(word)
		col += len(word)
	}
	return out.String()
}
