package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/poolsuite-cli/poolsuite/icon"
	"github.com/poolsuite-cli/poolsuite/internal/ui"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/session"
	"github.com/poolsuite-cli/poolsuite/style"
)

const (
	contentWidth = 72
	barWidth     = 40
)

type snapshotMsg session.Snapshot

type doneMsg struct {
	err error
}

type model struct {
	snapshot session.Snapshot
	keys     chan<- string
	options  *Options

	keymap   *keymap
	spinnerC spinner.Model
	progress progress.Model
	helpC    help.Model
	notifier *ui.Model

	width, height int
	quitting      bool
	done          bool
}

func newModel(keys chan<- string, options *Options) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.HighlightColor)

	bar := progress.New(
		progress.WithGradient(string(style.MutedColor), string(style.AccentColor)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)

	h := help.New()
	h.ShortSeparator = "  "

	return &model{
		keys:     keys,
		options:  options,
		keymap:   newKeymap(),
		spinnerC: s,
		progress: bar,
		helpC:    h,
		notifier: &ui.Model{},
	}
}

func (m *model) Init() tea.Cmd {
	return m.spinnerC.Tick
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.notifier.Update(msg)

	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case snapshotMsg:
		m.snapshot = session.Snapshot(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.helpC.Width = msg.Width
	case spinner.TickMsg:
		var tick tea.Cmd
		m.spinnerC, tick = m.spinnerC.Update(msg)
		return m, tea.Batch(cmd, tick)
	case tea.KeyMsg:
		return m, tea.Batch(cmd, m.handleKey(msg))
	}

	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keymap.forceQuit) {
		// a second interrupt closes the interface without waiting
		if m.quitting {
			return tea.Quit
		}
		m.quitting = true
		m.forward(session.KeyQuit)
		return ui.Notify("stopping...")
	}

	name, ok := m.keymap.translate(msg)
	if !ok {
		return nil
	}

	if name == session.KeyQuit {
		m.quitting = true
	}

	m.forward(name)

	switch name {
	case session.KeySeekBack:
		return ui.Notify(fmt.Sprintf("-%ds", m.seekSeconds()))
	case session.KeySeekForward:
		return ui.Notify(fmt.Sprintf("+%ds", m.seekSeconds()))
	case session.KeyNext:
		return ui.Notify(icon.Get(icon.Skip) + " next")
	}

	return nil
}

// forward hands a key to the session without ever blocking the interface.
func (m *model) forward(name string) {
	select {
	case m.keys <- name:
	default:
		log.Debugf("key %q dropped, session busy", name)
	}
}

func (m *model) seekSeconds() int {
	if m.options.SeekSeconds <= 0 {
		return 10
	}
	return m.options.SeekSeconds
}
