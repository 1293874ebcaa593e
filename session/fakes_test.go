package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/poolsuite-cli/poolsuite/source"
)

var errUnavailable = errors.New("unavailable")

type fakeController struct {
	mu       sync.Mutex
	end      chan struct{}
	endOnce  *sync.Once
	current  string
	onTime   func(position, duration float64)
	paused   bool
	failing  map[string]bool
	played   []string
	seeks    []float64
	quits    int
	started  chan string
}

func newFakeController() *fakeController {
	end := make(chan struct{})
	close(end)

	return &fakeController{
		end:     end,
		endOnce: &sync.Once{},
		failing: map[string]bool{},
		started: make(chan string, 32),
	}
}

func (f *fakeController) Play(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing[url] {
		return errUnavailable
	}

	f.end = make(chan struct{})
	f.endOnce = &sync.Once{}
	f.current = url
	f.paused = false
	f.played = append(f.played, url)
	return nil
}

func (f *fakeController) Seek(_ context.Context, delta float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seeks = append(f.seeks, delta)
	return nil
}

func (f *fakeController) Position(context.Context) float64 { return 0 }
func (f *fakeController) Duration(context.Context) float64 { return 0 }

func (f *fakeController) TogglePause(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paused = !f.paused
	return nil
}

func (f *fakeController) IsPaused(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.paused
}

func (f *fakeController) Quit() error {
	f.mu.Lock()
	f.quits++
	f.mu.Unlock()

	f.finish()
	return nil
}

// finish ends the current playback as if the file ran out.
func (f *fakeController) finish() {
	f.mu.Lock()
	end, once := f.end, f.endOnce
	f.mu.Unlock()

	once.Do(func() { close(end) })
}

func (f *fakeController) OnTimeChange(handler func(position, duration float64)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.onTime = handler
}

func (f *fakeController) OnEnd(func()) {}

// WaitForEnd is the last call a session makes before waiting, so it
// announces the track as started.
func (f *fakeController) WaitForEnd() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.started <- f.current
	return f.end
}

func (f *fakeController) tick(position, duration float64) {
	f.mu.Lock()
	handler := f.onTime
	f.mu.Unlock()

	if handler != nil {
		handler(position, duration)
	}
}

func (f *fakeController) Played() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.played...)
}

func (f *fakeController) Seeks() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]float64(nil), f.seeks...)
}

func (f *fakeController) Quits() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.quits
}

// next waits for the next track to start.
func (f *fakeController) next() string {
	select {
	case url := <-f.started:
		return url
	case <-time.After(2 * time.Second):
		return "<timeout>"
	}
}

type fakeResolver struct {
	failing map[int64]bool
}

func (r *fakeResolver) Resolve(_ context.Context, track *source.Track) (*source.Stream, error) {
	if r.failing[track.ID] {
		return nil, source.ErrNoStream
	}

	return &source.Stream{URL: streamURL(track), Protocol: source.ProtocolHLS}, nil
}

func streamURL(track *source.Track) string {
	return fmt.Sprintf("https://stream.test/%d.m3u8", track.ID)
}

type fakeRenderer struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (r *fakeRenderer) Render(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots = append(r.snapshots, s)
}

func (r *fakeRenderer) Snapshots() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Snapshot(nil), r.snapshots...)
}

func tracks(titles ...string) []*source.Track {
	out := make([]*source.Track, len(titles))
	for i, title := range titles {
		out[i] = &source.Track{
			ID:       int64(i + 1),
			Title:    title,
			Artist:   "Poolsuite",
			Duration: 3 * time.Minute,
		}
	}
	return out
}
