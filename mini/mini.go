// Package mini is the single line player interface.
package mini

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/cancelreader"
	"github.com/muesli/reflow/truncate"
	"github.com/poolsuite-cli/poolsuite/icon"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/session"
	"github.com/poolsuite-cli/poolsuite/util"
	"golang.org/x/term"
)

const defaultWidth = 80

// PlayFunc drives playback. It reads keys and renders through r.
type PlayFunc func(ctx context.Context, keys <-chan string, r session.Renderer) error

// Renderer rewrites one terminal line per snapshot.
type Renderer struct {
	mu    sync.Mutex
	out   io.Writer
	width int
}

// NewRenderer writes to out, truncating lines to width cells.
func NewRenderer(out io.Writer, width int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}

	return &Renderer{out: out, width: width}
}

// Render implements session.Renderer.
func (r *Renderer) Render(s session.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// \x1b[K clears whatever the previous line left behind
	_, _ = fmt.Fprintf(r.out, "\r%s\x1b[K", Line(s, r.width-1))
}

// Clear erases the line.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprint(r.out, "\r\x1b[K")
}

// Line formats a snapshot as a single line of at most width cells.
func Line(s session.Snapshot, width int) string {
	var b strings.Builder

	if s.Loading() || s.Track == nil {
		message := s.LoadingMessage
		if message == "" {
			message = "Loading..."
		}
		fmt.Fprintf(&b, "%s %s", icon.Get(icon.Progress), message)
	} else {
		glyph := icon.Get(icon.Playing)
		if s.Paused {
			glyph = icon.Get(icon.Paused)
		}

		fmt.Fprintf(
			&b,
			"%s %s  [%d/%d]  %s / %s",
			glyph,
			s.Track,
			s.Index,
			s.Total,
			util.FormatClock(s.Position),
			util.FormatClock(s.Duration),
		)
	}

	if s.PlaylistKey != "" {
		fmt.Fprintf(&b, "  (%s)", s.PlaylistKey)
	}

	line := strings.TrimSpace(b.String())
	if width > 0 {
		line = truncate.StringWithTail(line, uint(width), "…")
	}

	return line
}

// Run puts the terminal in raw mode and reads keys from it while play runs.
func Run(ctx context.Context, play PlayFunc) error {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw terminal: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, state)
		}()
	}

	reader, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return err
	}
	defer reader.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan string, 16)
	go readKeys(ctx, reader, keys)

	width := defaultWidth
	if w, _, err := util.TerminalSize(); err == nil {
		width = w
	}

	renderer := NewRenderer(os.Stdout, width)
	err = play(ctx, keys, renderer)

	reader.Cancel()
	renderer.Clear()
	return err
}

// readKeys decodes in until it fails or ctx is done, then closes out.
func readKeys(ctx context.Context, in io.Reader, out chan<- string) {
	defer close(out)

	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		for _, k := range decode(buf[:n]) {
			select {
			case out <- k:
			case <-ctx.Done():
				return
			}
		}

		if err != nil {
			if err != io.EOF && err != cancelreader.ErrCanceled {
				log.Debugf("read keys: %s", err)
			}
			return
		}
	}
}
