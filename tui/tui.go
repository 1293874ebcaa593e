// Package tui is the full screen player interface.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/poolsuite-cli/poolsuite/session"
)

// PlayFunc drives playback. It reads keys and renders through r until it
// returns, which closes the interface.
type PlayFunc func(ctx context.Context, keys <-chan string, r session.Renderer) error

// Options configure the interface.
type Options struct {
	// SeekSeconds is shown when seeking.
	SeekSeconds int

	// Inline disables the alternate screen.
	Inline bool
}

// Renderer forwards snapshots to a running program.
type Renderer struct {
	program *tea.Program
}

// Render implements session.Renderer.
func (r *Renderer) Render(s session.Snapshot) {
	r.program.Send(snapshotMsg(s))
}

// Run shows the interface while play runs and returns play's error.
func Run(ctx context.Context, options *Options, play PlayFunc) error {
	if options == nil {
		options = &Options{}
	}

	keys := make(chan string, 16)
	m := newModel(keys, options)

	var programOptions []tea.ProgramOption
	if !options.Inline {
		programOptions = append(programOptions, tea.WithAltScreen())
	}

	program := tea.NewProgram(m, programOptions...)
	renderer := &Renderer{program: program}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 1)
	go func() {
		err := play(ctx, keys, renderer)
		errs <- err
		program.Send(doneMsg{err: err})
	}()

	_, err := program.Run()
	playErr := stop(cancel, keys, errs)
	if err != nil {
		return err
	}

	return playErr
}

// stop asks playback to quit, cancels it, and waits for it to return.
// The interface may have been closed by force while playback was still busy.
func stop(cancel context.CancelFunc, keys chan<- string, errs <-chan error) error {
	select {
	case keys <- session.KeyQuit:
	default:
	}
	cancel()

	return <-errs
}
