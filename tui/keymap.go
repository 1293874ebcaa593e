package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/poolsuite-cli/poolsuite/session"
)

// keymap binds terminal keys to session key names.
type keymap struct {
	seekBack, seekForward,
	pause,
	next, prev,
	switchPlaylist,
	quit, forceQuit key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		seekBack: key.NewBinding(
			key.WithKeys("left", ","),
			key.WithHelp("←/,", "seek back"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "."),
			key.WithHelp("→/.", "seek forward"),
		),
		pause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "play/pause"),
		),
		next: key.NewBinding(
			key.WithKeys("n", ">"),
			key.WithHelp("n", "next"),
		),
		prev: key.NewBinding(
			key.WithKeys("p", "<"),
			key.WithHelp("p", "prev"),
		),
		switchPlaylist: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "playlist"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
		),
	}
}

// translate returns the session key name for a terminal key.
func (k *keymap) translate(msg tea.KeyMsg) (string, bool) {
	for _, b := range k.bindings() {
		if key.Matches(msg, b.binding) {
			return b.name, true
		}
	}

	return "", false
}

// ShortHelp implements help.KeyMap.
func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.pause, k.seekBack, k.seekForward, k.next, k.prev, k.switchPlaylist, k.quit}
}

// FullHelp implements help.KeyMap.
func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.pause, k.seekBack, k.seekForward},
		{k.next, k.prev, k.switchPlaylist, k.quit},
	}
}

type forwarded struct {
	binding key.Binding
	name    string
}

// bindings pairs every forwarded binding with its session key name.
func (k *keymap) bindings() []forwarded {
	return []forwarded{
		{k.seekBack, session.KeySeekBack},
		{k.seekForward, session.KeySeekForward},
		{k.pause, session.KeyPause},
		{k.next, session.KeyNext},
		{k.prev, session.KeyPrev},
		{k.switchPlaylist, session.KeySwitch},
		{k.quit, session.KeyQuit},
	}
}
