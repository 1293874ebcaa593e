// Package source defines the domain models and interfaces for catalogue discovery and stream retrieval.
package source

import (
	"context"
	"errors"
)

// ErrNoStream is returned when a track has no playable transcoding.
var ErrNoStream = errors.New("no playable stream")

// TrackLister fetches the ordered track list of a playlist.
type TrackLister interface {
	// Tracks returns the tracks of the playlist located at url.
	Tracks(ctx context.Context, url string) ([]*Track, error)
}

// StreamResolver turns a catalogue track into a URL the player can open.
type StreamResolver interface {
	// Resolve returns the stream for the track, or an error wrapping ErrNoStream.
	Resolve(ctx context.Context, track *Track) (*Stream, error)
}
