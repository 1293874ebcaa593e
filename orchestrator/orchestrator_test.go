package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/poolsuite-cli/poolsuite/session"
	"github.com/poolsuite-cli/poolsuite/source"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeProvider struct {
	mu        sync.Mutex
	playlists map[string][]*source.Track
	requested []string
	err       error
}

func (p *fakeProvider) Tracks(_ context.Context, key string) ([]*source.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requested = append(p.requested, key)
	if p.err != nil {
		return nil, p.err
	}

	return p.playlists[key], nil
}

func (p *fakeProvider) Requested() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.requested...)
}

type fakeResolver struct {
	fail bool
}

func (r *fakeResolver) Resolve(_ context.Context, track *source.Track) (*source.Stream, error) {
	if r.fail {
		return nil, source.ErrNoStream
	}

	return &source.Stream{URL: fmt.Sprintf("https://stream.test/%d", track.ID)}, nil
}

// fakeController ends every track on its own unless hold is set.
type fakeController struct {
	mu      sync.Mutex
	hold    bool
	end     chan struct{}
	once    *sync.Once
	played  []string
	quits   int
	started chan string
	current string
}

func newFakeController(hold bool) *fakeController {
	end := make(chan struct{})
	once := &sync.Once{}
	// nothing is playing yet, so the end signal starts spent
	once.Do(func() { close(end) })

	return &fakeController{hold: hold, end: end, once: once, started: make(chan string, 32)}
}

func (f *fakeController) Play(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.end = make(chan struct{})
	f.once = &sync.Once{}
	f.current = url
	f.played = append(f.played, url)

	if !f.hold {
		f.once.Do(func() { close(f.end) })
	}
	return nil
}

func (f *fakeController) Seek(context.Context, float64) error { return nil }
func (f *fakeController) Position(context.Context) float64    { return 0 }
func (f *fakeController) Duration(context.Context) float64    { return 0 }
func (f *fakeController) TogglePause(context.Context) error   { return nil }
func (f *fakeController) IsPaused(context.Context) bool       { return false }
func (f *fakeController) OnTimeChange(func(float64, float64)) {}
func (f *fakeController) OnEnd(func())                        {}

func (f *fakeController) Quit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.quits++
	f.once.Do(func() { close(f.end) })
	return nil
}

func (f *fakeController) WaitForEnd() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.started <- f.current
	return f.end
}

func (f *fakeController) Quits() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.quits
}

func (f *fakeController) Played() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.played...)
}

type fakeRenderer struct {
	mu        sync.Mutex
	snapshots []session.Snapshot
}

func (r *fakeRenderer) Render(s session.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots = append(r.snapshots, s)
}

func (r *fakeRenderer) First() session.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.snapshots) == 0 {
		return session.Snapshot{}
	}
	return r.snapshots[0]
}

func playlist(base int64, n int) []*source.Track {
	out := make([]*source.Track, n)
	for i := range out {
		out[i] = &source.Track{ID: base + int64(i), Title: fmt.Sprintf("track %d", base+int64(i))}
	}
	return out
}

func run(o *Orchestrator, key string) <-chan error {
	out := make(chan error, 1)
	go func() {
		out <- o.Run(context.Background(), key)
	}()
	return out
}

func await(errs <-chan error) error {
	select {
	case err := <-errs:
		return err
	case <-time.After(3 * time.Second):
		return errors.New("run did not return")
	}
}

func TestOrchestrator(t *testing.T) {
	Convey("Given two playlists", t, func() {
		provider := &fakeProvider{playlists: map[string][]*source.Track{
			"official": playlist(100, 2),
			"tokyo":    playlist(200, 1),
		}}
		resolver := &fakeResolver{}
		renderer := &fakeRenderer{}
		keys := make(chan string, 4)

		options := func(controller session.Controller) Options {
			return Options{
				Provider:        provider,
				Resolver:        resolver,
				Controller:      controller,
				Renderer:        renderer,
				Keys:            keys,
				AvailableKeys:   []string{"official", "tokyo"},
				RefreshInterval: 10 * time.Millisecond,
			}
		}

		Convey("When every track plays to the end", func() {
			controller := newFakeController(false)
			err := await(run(New(options(controller)), "official"))

			Convey("Then the run ends cleanly and the player is quit", func() {
				So(err, ShouldBeNil)
				So(controller.Played(), ShouldHaveLength, 2)
				So(controller.Quits(), ShouldBeGreaterThanOrEqualTo, 1)
				So(provider.Requested(), ShouldResemble, []string{"official"})
			})

			Convey("Then a fetching snapshot is rendered first", func() {
				first := renderer.First()
				So(first.LoadingMessage, ShouldEqual, MessageFetching)
				So(first.PlaylistKey, ShouldEqual, "official")
				So(first.Track, ShouldBeNil)
			})
		})

		Convey("When no stream can be resolved", func() {
			resolver.fail = true
			controller := newFakeController(false)
			err := await(run(New(options(controller)), "official"))

			Convey("Then nothing was playable", func() {
				So(errors.Is(err, ErrNothingPlayable), ShouldBeTrue)
				So(controller.Played(), ShouldBeEmpty)
			})
		})

		Convey("When the playlist cannot be fetched", func() {
			provider.err = errors.New("offline")
			controller := newFakeController(false)
			err := await(run(New(options(controller)), "official"))

			Convey("Then it is treated as empty", func() {
				So(errors.Is(err, ErrNothingPlayable), ShouldBeTrue)
			})

			Convey("Then the idle player is still quit", func() {
				So(controller.Played(), ShouldBeEmpty)
				So(controller.Quits(), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When the user switches playlists", func() {
			controller := newFakeController(true)
			errs := run(New(options(controller)), "official")

			So(<-controller.started, ShouldEqual, "https://stream.test/100")
			keys <- session.KeySwitch
			So(<-controller.started, ShouldEqual, "https://stream.test/200")
			keys <- session.KeyQuit

			Convey("Then the next playlist is fetched and played", func() {
				So(await(errs), ShouldBeNil)
				So(provider.Requested(), ShouldResemble, []string{"official", "tokyo"})
			})
		})

		Convey("When the user quits", func() {
			controller := newFakeController(true)
			errs := run(New(options(controller)), "tokyo")

			<-controller.started
			keys <- session.KeyQuit

			Convey("Then the run returns without an error", func() {
				So(await(errs), ShouldBeNil)
				So(controller.Played(), ShouldHaveLength, 1)
				So(provider.Requested(), ShouldResemble, []string{"tokyo"})
			})
		})

		Convey("When an earlier playlist played and a later one is empty", func() {
			provider.playlists["tokyo"] = nil
			controller := newFakeController(true)
			errs := run(New(options(controller)), "official")

			<-controller.started
			keys <- session.KeySwitch

			Convey("Then the run is not a failure", func() {
				So(await(errs), ShouldBeNil)
			})
		})
	})
}
