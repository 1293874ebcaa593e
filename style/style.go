// Package style composes lipgloss styles into plain string renderers.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer with foreground c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

// Truncate cuts s to at most width cells, ending with an ellipsis when cut.
func Truncate(width int) func(string) string {
	return func(s string) string {
		if width <= 0 || lipgloss.Width(s) <= width {
			return s
		}
		return truncate.StringWithTail(s, uint(width), "…")
	}
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)
