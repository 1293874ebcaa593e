// Package source defines the domain models and interfaces for catalogue discovery and stream retrieval.
package source

import (
	"fmt"
	"time"
)

// Track is a single catalogue entry. It is never mutated after being fetched.
type Track struct {
	// Catalogue identifier.
	ID int64 `json:"id"`
	// Display title.
	Title string `json:"title"`
	// Uploader name.
	Artist string `json:"artist"`
	// Length reported by the catalogue.
	Duration time.Duration `json:"duration"`
	// Public page of the track.
	Permalink string `json:"permalink,omitempty"`
	// Stream variants offered by the catalogue.
	Transcodings []Transcoding `json:"transcodings,omitempty"`
	// Token the catalogue requires when resolving a transcoding.
	Authorization string `json:"authorization,omitempty"`
}

// String returns "artist - title", or just the title when the artist is unknown.
func (t *Track) String() string {
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}

// Seconds returns the catalogue duration in seconds.
func (t *Track) Seconds() float64 {
	return t.Duration.Seconds()
}
