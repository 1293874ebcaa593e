// Package soundcloud lists playlist tracks and resolves their streams
// through the SoundCloud v2 API.
package soundcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/poolsuite-cli/poolsuite/constant"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/network"
	"github.com/poolsuite-cli/poolsuite/source"
	"github.com/poolsuite-cli/poolsuite/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	DefaultAPIBase = "https://api-v2.soundcloud.com"
	DefaultWebBase = "https://soundcloud.com"

	// hydrateBatch is the most ids /tracks accepts at once.
	hydrateBatch = 50
)

var (
	// ErrUnauthorized is returned for 401 responses.
	ErrUnauthorized = errors.New(`soundcloud rejected the credentials, run "` + constant.Poolsuite + ` login" to refresh them`)

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("soundcloud resource not found")

	// ErrNotPlaylist is returned when a URL resolves to something else.
	ErrNotPlaylist = errors.New("not a playlist")
)

// StatusError is any other unsuccessful response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("soundcloud api error: %s", e.Status)
}

// Options configure a Client. Zero values fall back to the defaults.
type Options struct {
	HTTPClient *http.Client
	APIBase    string
	WebBase    string

	// ClientID skips discovery when set.
	ClientID string

	// Token is an optional OAuth token.
	Token string

	// CacheLifetime of track listings. Zero disables the track cache.
	CacheLifetime time.Duration
}

// DefaultOptions returns options read from the configuration.
func DefaultOptions() *Options {
	return &Options{
		ClientID:      viper.GetString(key.SoundcloudClientID),
		CacheLifetime: time.Duration(viper.GetInt(key.SoundcloudCacheHours)) * time.Hour,
	}
}

// Client talks to the SoundCloud API. It implements source.TrackLister
// and source.StreamResolver.
type Client struct {
	http    *http.Client
	apiBase string
	webBase string
	token   string

	mu         sync.Mutex
	clientID   string
	discovered bool

	tracks *cacher[string, []*source.Track]
}

// New creates a client.
func New(options *Options) *Client {
	if options == nil {
		options = DefaultOptions()
	}

	c := &Client{
		http:     lo.Ternary(options.HTTPClient != nil, options.HTTPClient, network.Client),
		apiBase:  strings.TrimRight(lo.Ternary(options.APIBase != "", options.APIBase, DefaultAPIBase), "/"),
		webBase:  strings.TrimRight(lo.Ternary(options.WebBase != "", options.WebBase, DefaultWebBase), "/"),
		token:    options.Token,
		clientID: options.ClientID,
	}

	if options.CacheLifetime > 0 {
		c.tracks = newCacher[string, []*source.Track](where.Tracks(), options.CacheLifetime)
	}

	return c
}

// Tracks returns the playable tracks of the playlist at playlistURL in order.
func (c *Client) Tracks(ctx context.Context, playlistURL string) ([]*source.Track, error) {
	if c.tracks != nil {
		if cached, ok := c.tracks.Get(playlistURL).Get(); ok {
			log.Debugf("using cached tracks for %s", playlistURL)
			return cached, nil
		}
	}

	var resolved apiResolved
	err := c.get(ctx, c.apiBase+"/resolve", url.Values{"url": {playlistURL}}, &resolved)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", playlistURL, err)
	}

	if resolved.Kind != "" && resolved.Kind != "playlist" {
		return nil, fmt.Errorf("resolve %s: %w (got %s)", playlistURL, ErrNotPlaylist, resolved.Kind)
	}

	full, err := c.hydrate(ctx, resolved.Tracks)
	if err != nil {
		return nil, err
	}

	tracks := lo.Map(full, func(t *apiTrack, _ int) *source.Track {
		return t.toTrack()
	})

	if c.tracks != nil && len(tracks) > 0 {
		if err := c.tracks.Set(playlistURL, tracks); err != nil {
			log.Warnf("cache tracks: %s", err)
		}
	}

	return tracks, nil
}

// hydrate replaces stub tracks with full ones, keeping the playlist order.
// Tracks that cannot be hydrated are dropped.
func (c *Client) hydrate(ctx context.Context, tracks []*apiTrack) ([]*apiTrack, error) {
	stubs := lo.FilterMap(tracks, func(t *apiTrack, _ int) (int64, bool) {
		if t == nil {
			return 0, false
		}
		return t.ID, t.stub()
	})

	if len(stubs) == 0 {
		return tracks, nil
	}

	log.Debugf("hydrating %d stub tracks", len(stubs))

	full := make(map[int64]*apiTrack, len(stubs))
	for _, batch := range lo.Chunk(stubs, hydrateBatch) {
		ids := strings.Join(lo.Map(batch, func(id int64, _ int) string {
			return strconv.FormatInt(id, 10)
		}), ",")

		var fetched []*apiTrack
		if err := c.get(ctx, c.apiBase+"/tracks", url.Values{"ids": {ids}}, &fetched); err != nil {
			return nil, fmt.Errorf("hydrate tracks: %w", err)
		}

		for _, t := range fetched {
			full[t.ID] = t
		}
	}

	return lo.FilterMap(tracks, func(t *apiTrack, _ int) (*apiTrack, bool) {
		if t == nil {
			return nil, false
		}
		if !t.stub() {
			return t, true
		}
		f, ok := full[t.ID]
		return f, ok && !f.stub()
	}), nil
}

// Resolve exchanges the preferred transcoding of track for a stream URL.
func (c *Client) Resolve(ctx context.Context, track *source.Track) (*source.Stream, error) {
	transcoding, ok := source.Preferred(track.Transcodings)
	if !ok {
		return nil, fmt.Errorf("%s: %w", track, source.ErrNoStream)
	}

	params := url.Values{}
	if track.Authorization != "" {
		params.Set("track_authorization", track.Authorization)
	}

	var stream apiStream
	if err := c.get(ctx, transcoding.URL, params, &stream); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", track, source.ErrNoStream, err)
	}

	if stream.URL == "" {
		return nil, fmt.Errorf("%s: %w: empty stream url", track, source.ErrNoStream)
	}

	return &source.Stream{URL: stream.URL, Protocol: transcoding.Protocol}, nil
}

// get fetches rawURL with params and the client id, decoding JSON into v.
func (c *Client) get(ctx context.Context, rawURL string, params url.Values, v any) error {
	clientID, err := c.ClientID(ctx)
	if err != nil {
		return err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	query := u.Query()
	for k, values := range params {
		query[k] = values
	}
	query.Set("client_id", clientID)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "OAuth "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.forgetClientID()
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
