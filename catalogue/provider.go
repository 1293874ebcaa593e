package catalogue

import (
	"context"

	"github.com/poolsuite-cli/poolsuite/source"
)

// Provider fetches the tracks of catalogue playlists by key.
type Provider struct {
	lister source.TrackLister
}

// NewProvider creates a provider backed by lister.
func NewProvider(lister source.TrackLister) *Provider {
	return &Provider{lister: lister}
}

// Tracks returns the tracks of the playlist named key.
func (p *Provider) Tracks(ctx context.Context, key string) ([]*source.Track, error) {
	playlist, err := Get(key)
	if err != nil {
		return nil, err
	}

	return p.lister.Tracks(ctx, playlist.URL)
}
