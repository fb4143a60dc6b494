package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Subtle  lipgloss.Style
	Panel   lipgloss.Style
}

// NewStyles builds the report palette for one renderer, so colour is only
// emitted when that renderer's output supports it.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff")),
		Section: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#888899")),
		Value: r.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true),
		Pass: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88")),
		Fail: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")),
		Subtle: r.NewStyle().
			Foreground(lipgloss.Color("#666688")),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1),
	}
}

var DefaultStyles = NewStyles(lipgloss.DefaultRenderer())

// Separator renders a decorative rule.
func (s Styles) Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}
