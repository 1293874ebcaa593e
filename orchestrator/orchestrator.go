// Package orchestrator runs playlist sessions back to back, switching
// playlists on request, until the user quits or the music runs out.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/session"
	"github.com/poolsuite-cli/poolsuite/source"
	"github.com/poolsuite-cli/poolsuite/util"
)

// ErrNothingPlayable is returned when a run ends without a single track
// having been played.
var ErrNothingPlayable = errors.New("no playable tracks found")

// MessageFetching is shown while a playlist is being fetched.
const MessageFetching = "Fetching playlist..."

// TrackListProvider returns the tracks of a playlist by key.
type TrackListProvider interface {
	Tracks(ctx context.Context, key string) ([]*source.Track, error)
}

// Options configure an Orchestrator.
type Options struct {
	Provider   TrackListProvider
	Resolver   source.StreamResolver
	Controller session.Controller
	Renderer   session.Renderer

	// Keys is shared by every session of the run.
	Keys <-chan string

	// AvailableKeys are the playlists tab cycles through.
	AvailableKeys []string

	Shuffle         bool
	SeekSeconds     float64
	RefreshInterval time.Duration
}

// Orchestrator owns the controller for the duration of Run.
type Orchestrator struct {
	options Options
}

// New creates an orchestrator.
func New(options Options) *Orchestrator {
	return &Orchestrator{options: options}
}

// Run plays the playlist named key and whatever the user switches to.
// The controller is always quit before Run returns.
func (o *Orchestrator) Run(ctx context.Context, key string) error {
	defer func() {
		if err := o.options.Controller.Quit(); err != nil {
			log.Warnf("quit player: %s", err)
		}
	}()

	played := 0
	for {
		o.loading(key)

		tracks, err := o.options.Provider.Tracks(ctx, key)
		if err != nil {
			log.Errorf("fetch playlist %s: %s", key, err)
			tracks = nil
		}
		log.Infof("playlist %s: %s", key, util.Quantify(len(tracks), "track", "tracks"))

		result := session.New(session.Options{
			Tracks:          tracks,
			Shuffle:         o.options.Shuffle,
			Controller:      o.options.Controller,
			Resolver:        o.options.Resolver,
			Renderer:        o.options.Renderer,
			PlaylistKey:     key,
			AvailableKeys:   o.options.AvailableKeys,
			SeekSeconds:     o.options.SeekSeconds,
			RefreshInterval: o.options.RefreshInterval,
		}).Run(ctx, o.options.Keys)

		played += result.Played
		log.Debugf("session %s ended: %s (%d played)", key, result.Reason, result.Played)

		switch result.Reason {
		case session.ReasonSwitch:
			key = result.Target
		case session.ReasonQuit:
			return nil
		default:
			if played == 0 {
				return ErrNothingPlayable
			}
			return nil
		}
	}
}

func (o *Orchestrator) loading(key string) {
	if o.options.Renderer == nil {
		return
	}

	o.options.Renderer.Render(session.Snapshot{
		PlaylistKey:    key,
		AvailableKeys:  o.options.AvailableKeys,
		LoadingMessage: MessageFetching,
	})
}
