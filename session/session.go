// Package session plays one ordered list of tracks through a Controller,
// reacting to keys and rendering snapshots until the list ends, the user
// quits or another playlist is picked.
package session

import (
	"context"
	"time"

	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/source"
	"github.com/poolsuite-cli/poolsuite/util"
	"github.com/samber/lo"
)

const (
	defaultSeekSeconds     = 10
	defaultRefreshInterval = 500 * time.Millisecond
)

// Loading messages shown while a track is being prepared.
const (
	MessageResolving = "Resolving stream..."
	MessageStarting  = "Starting player..."
)

// Controller is the playback engine a session drives.
type Controller interface {
	Play(ctx context.Context, url string) error
	Seek(ctx context.Context, delta float64) error
	Position(ctx context.Context) float64
	Duration(ctx context.Context) float64
	TogglePause(ctx context.Context) error
	IsPaused(ctx context.Context) bool
	Quit() error
	OnTimeChange(handler func(position, duration float64))
	OnEnd(handler func())
	WaitForEnd() <-chan struct{}
}

// Renderer displays snapshots. Render must not block for long.
type Renderer interface {
	Render(Snapshot)
}

// Options configure a Session.
type Options struct {
	Tracks     []*source.Track
	Shuffle    bool
	Controller Controller
	Resolver   source.StreamResolver
	Renderer   Renderer

	// PlaylistKey is the playlist being played, AvailableKeys the ones tab cycles through.
	PlaylistKey   string
	AvailableKeys []string

	SeekSeconds     float64
	RefreshInterval time.Duration
}

type tick struct {
	position, duration float64
}

// Session is single use: build it with New, then call Run once.
type Session struct {
	options Options
	order   []*source.Track

	index    int
	played   int
	intent   Intent
	position float64
	duration float64
	paused   bool
}

// New builds a session and its play order.
func New(options Options) *Session {
	if options.SeekSeconds <= 0 {
		options.SeekSeconds = defaultSeekSeconds
	}
	if options.RefreshInterval <= 0 {
		options.RefreshInterval = defaultRefreshInterval
	}

	return &Session{
		options: options,
		order:   PlayOrder(options.Tracks, options.Shuffle),
	}
}

// PlayOrder returns the tracks in play order. Shuffling permutes a copy;
// the input is never modified.
func PlayOrder(tracks []*source.Track, shuffle bool) []*source.Track {
	order := make([]*source.Track, len(tracks))
	copy(order, tracks)

	if shuffle {
		order = lo.Shuffle(order)
	}

	return order
}

// Order returns the play order of the session.
func (s *Session) Order() []*source.Track {
	return s.order
}

// Run plays until the order is exhausted, the user quits or switches
// playlists, or ctx is cancelled. keys may be nil.
func (s *Session) Run(ctx context.Context, keys <-chan string) Result {
	for {
		if s.index < 0 || s.index >= len(s.order) {
			return s.result(ReasonEnd, "")
		}

		if ctx.Err() != nil {
			return s.result(ReasonQuit, "")
		}

		track := s.order[s.index]
		if !s.start(ctx, track) {
			s.index++
			continue
		}

		intent := s.wait(ctx, keys, track)

		switch intent.Kind {
		case IntentQuit:
			return s.result(ReasonQuit, "")
		case IntentSwitch:
			return s.result(ReasonSwitch, intent.Target)
		case IntentPrev:
			if s.index > 0 {
				s.index--
			}
		default:
			s.index++
		}
	}
}

// start resolves the stream for track and starts the player.
// It reports false when the track has to be skipped.
func (s *Session) start(ctx context.Context, track *source.Track) bool {
	s.position, s.duration, s.paused = 0, track.Seconds(), false
	s.render(track, MessageResolving)

	stream, err := s.options.Resolver.Resolve(ctx, track)
	if err != nil {
		log.Warnf("skipping %q: %s", track, err)
		return false
	}

	s.render(track, MessageStarting)

	if err := s.options.Controller.Play(ctx, stream.URL); err != nil {
		log.Warnf("skipping %q: %s", track, err)
		return false
	}

	s.played++
	log.Infof("playing %q (%d/%d)", track, s.index+1, len(s.order))
	return true
}

// wait handles keys and telemetry until the current playback ends and
// returns the intent that was pending at that moment.
func (s *Session) wait(ctx context.Context, keys <-chan string, track *source.Track) Intent {
	controller := s.options.Controller
	s.intent = Intent{}

	telemetry := util.NewMailbox[tick]()
	controller.OnTimeChange(func(position, duration float64) {
		telemetry.Put(tick{position: position, duration: duration})
	})
	controller.OnEnd(func() {
		controller.OnTimeChange(nil)
	})

	ended := controller.WaitForEnd()

	ticker := time.NewTicker(s.options.RefreshInterval)
	defer ticker.Stop()

	s.render(track, "")

	done := ctx.Done()
	for {
		select {
		case <-ended:
			intent := s.intent
			s.intent = Intent{}
			return intent
		case <-done:
			done = nil
			s.navigate(Intent{Kind: IntentQuit})
		case k, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			s.handleKey(ctx, k, track)
		case t := <-telemetry.C():
			s.position = t.position
			if t.duration > 0 {
				s.duration = t.duration
			}
		case <-ticker.C:
			s.render(track, "")
		}
	}
}

func (s *Session) handleKey(ctx context.Context, k string, track *source.Track) {
	controller := s.options.Controller

	switch k {
	case KeySeekBack, KeySeekBackAlt:
		if err := controller.Seek(ctx, -s.options.SeekSeconds); err != nil {
			log.Debugf("seek: %s", err)
		}
	case KeySeekForward, KeySeekForwardAlt:
		if err := controller.Seek(ctx, s.options.SeekSeconds); err != nil {
			log.Debugf("seek: %s", err)
		}
	case KeyPause, KeyPauseAlt:
		if err := controller.TogglePause(ctx); err != nil {
			log.Debugf("toggle pause: %s", err)
		}
		s.paused = controller.IsPaused(ctx)
		s.render(track, "")
	case KeyNext, KeyNextAlt:
		s.navigate(Intent{Kind: IntentNext})
	case KeyPrev, KeyPrevAlt:
		s.navigate(Intent{Kind: IntentPrev})
	case KeyQuit, KeyQuitAlt, KeyInterrupt:
		s.navigate(Intent{Kind: IntentQuit})
	case KeySwitch:
		if target, ok := s.nextPlaylist(); ok {
			s.navigate(Intent{Kind: IntentSwitch, Target: target})
		}
	default:
		log.Tracef("unbound key %q", k)
	}
}

// navigate records intent, replacing any earlier one, and stops playback.
func (s *Session) navigate(intent Intent) {
	s.intent = intent
	if err := s.options.Controller.Quit(); err != nil {
		log.Debugf("quit: %s", err)
	}
}

// nextPlaylist returns the key after the current one, wrapping around.
func (s *Session) nextPlaylist() (string, bool) {
	keys := s.options.AvailableKeys
	if len(keys) == 0 {
		return "", false
	}

	_, i, found := lo.FindIndexOf(keys, func(k string) bool {
		return k == s.options.PlaylistKey
	})
	if !found {
		return keys[0], true
	}

	return keys[(i+1)%len(keys)], true
}

func (s *Session) render(track *source.Track, loading string) {
	if s.options.Renderer == nil {
		return
	}

	s.options.Renderer.Render(Snapshot{
		Track:          track,
		Index:          s.index + 1,
		Total:          len(s.order),
		Position:       s.position,
		Duration:       s.duration,
		Paused:         s.paused,
		PlaylistKey:    s.options.PlaylistKey,
		AvailableKeys:  s.options.AvailableKeys,
		LoadingMessage: loading,
	})
}

func (s *Session) result(reason Reason, target string) Result {
	return Result{Reason: reason, Target: target, Played: s.played}
}
