package soundcloud

import (
	"time"

	"github.com/poolsuite-cli/poolsuite/source"
	"github.com/samber/lo"
)

type apiUser struct {
	Username string `json:"username"`
}

type apiFormat struct {
	Protocol string `json:"protocol"`
	MimeType string `json:"mime_type"`
}

type apiTranscoding struct {
	URL    string    `json:"url"`
	Preset string    `json:"preset"`
	Format apiFormat `json:"format"`
}

type apiMedia struct {
	Transcodings []apiTranscoding `json:"transcodings"`
}

type apiTrack struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Duration           int64     `json:"duration"`
	PermalinkURL       string    `json:"permalink_url"`
	User               *apiUser  `json:"user"`
	Media              *apiMedia `json:"media"`
	TrackAuthorization string    `json:"track_authorization"`
}

// stub reports whether only the id of the track was returned.
// Large sets come back with full data for the first few tracks only.
func (t *apiTrack) stub() bool {
	return t.Title == "" || t.Media == nil
}

func (t *apiTrack) toTrack() *source.Track {
	track := &source.Track{
		ID:            t.ID,
		Title:         t.Title,
		Duration:      time.Duration(t.Duration) * time.Millisecond,
		Permalink:     t.PermalinkURL,
		Authorization: t.TrackAuthorization,
	}

	if t.User != nil {
		track.Artist = t.User.Username
	}

	if t.Media != nil {
		track.Transcodings = lo.Map(t.Media.Transcodings, func(tc apiTranscoding, _ int) source.Transcoding {
			return source.Transcoding{
				URL:      tc.URL,
				Preset:   tc.Preset,
				Protocol: source.Protocol(tc.Format.Protocol),
				MimeType: tc.Format.MimeType,
			}
		})
	}

	return track
}

// apiResolved is what /resolve returns for any permalink.
type apiResolved struct {
	Kind       string      `json:"kind"`
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	TrackCount int         `json:"track_count"`
	Tracks     []*apiTrack `json:"tracks"`
}

type apiStream struct {
	URL string `json:"url"`
}
