package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/poolsuite-cli/poolsuite/icon"
	"github.com/poolsuite-cli/poolsuite/style"
	"github.com/poolsuite-cli/poolsuite/util"
)

const tabWidth = 8

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.AccentColor).
			Padding(0, 1)

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(style.MutedColor)
	trackStyle       = lipgloss.NewStyle().Bold(true).Foreground(style.HighlightColor)
	counterStyle     = lipgloss.NewStyle().Foreground(style.MutedColor)
	loadingStyle     = lipgloss.NewStyle().Foreground(style.WarningColor)
	pausedStyle      = lipgloss.NewStyle().Foreground(style.WarningColor)
	playingStyle     = lipgloss.NewStyle().Foreground(style.SuccessColor)
)

func (m *model) View() string {
	if m.done {
		return ""
	}

	width := m.innerWidth()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	lines := []string{
		center.Render(m.viewTabs()),
		center.Render(counterStyle.Render(strings.Repeat("─", width))),
	}

	s := m.snapshot
	if s.Loading() || s.Track == nil {
		message := s.LoadingMessage
		if message == "" {
			message = "Loading..."
		}

		lines = append(lines,
			"",
			center.Render(m.spinnerC.View()+" "+loadingStyle.Render(message)),
			"",
		)
	} else {
		lines = append(lines,
			center.Render(trackStyle.Render(style.Truncate(width)(icon.Get(icon.Music)+" "+s.Track.String()))),
			center.Render(counterStyle.Render(fmt.Sprintf("[ %d / %d ]", s.Index, s.Total))),
			"",
			center.Render(m.viewProgress()),
			"",
			center.Render(m.helpC.View(m.keymap)),
		)
	}

	return m.notifier.View(boxStyle.Render(strings.Join(lines, "\n")))
}

func (m *model) viewTabs() string {
	tabs := make([]string, 0, len(m.snapshot.AvailableKeys))
	for _, k := range m.snapshot.AvailableKeys {
		label := k
		if len(label) > tabWidth {
			label = truncate.StringWithTail(label, tabWidth-1, ".")
		}
		label = lipgloss.PlaceHorizontal(tabWidth, lipgloss.Center, label)

		if k == m.snapshot.PlaylistKey {
			tabs = append(tabs, activeTabStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(" "+label+" "))
		}
	}

	return strings.Join(tabs, "")
}

func (m *model) viewProgress() string {
	s := m.snapshot

	glyph := playingStyle.Render(icon.Get(icon.Playing))
	if s.Paused {
		glyph = pausedStyle.Render(icon.Get(icon.Paused))
	}

	return fmt.Sprintf(
		"%s  %s / %s %s",
		m.progress.ViewAs(s.Progress()),
		util.FormatClock(s.Position),
		util.FormatClock(s.Duration),
		glyph,
	)
}

// innerWidth is the content width inside the box.
func (m *model) innerWidth() int {
	width := contentWidth
	if m.width > 0 {
		// border and padding take four cells
		width = util.Min(width, m.width-4)
	}

	return util.Max(width, 20)
}
