// Package catalogue knows which playlists can be played and where they live.
package catalogue

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// ErrUnknown is returned for a playlist key that is not in the catalogue.
var ErrUnknown = errors.New("unknown playlist")

// Playlist is a named SoundCloud set.
type Playlist struct {
	Key         string `json:"key" jsonschema:"description=Name used on the command line"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url" jsonschema:"format=uri"`
	Custom      bool   `json:"custom,omitempty" jsonschema:"description=Defined in the configuration file"`
}

func (p *Playlist) String() string {
	return p.Name
}

var builtin = []*Playlist{
	{
		Key:         "official",
		Name:        "Official Poolsuite FM Playlist",
		Description: "The main Poolsuite FM experience",
		URL:         "https://soundcloud.com/poolsuite/sets/poolsuite-fm-official-playlist",
	},
	{
		Key:         "official2",
		Name:        "Official Poolsuite FM Playlist Two",
		Description: "More summer vibes",
		URL:         "https://soundcloud.com/poolsuite/sets/poolsuite-fm-official-playlist-two",
	},
	{
		Key:         "mixtapes",
		Name:        "Poolsuite Mixtapes",
		Description: "Curated mixtape collection",
		URL:         "https://soundcloud.com/poolsuite/sets/poolsuite-mixtapes",
	},
	{
		Key:         "balearic",
		Name:        "Balearic Sundown",
		Description: "Sunset vibes from the Mediterranean",
		URL:         "https://soundcloud.com/poolsuite/sets/balearic-sundown",
	},
	{
		Key:         "indie",
		Name:        "Indie Summer",
		Description: "Indie gems for sunny days",
		URL:         "https://soundcloud.com/poolsuite/sets/indie-summer",
	},
	{
		Key:         "tokyo",
		Name:        "Tokyo Disco",
		Description: "Japanese city pop and disco",
		URL:         "https://soundcloud.com/poolsuite/sets/tokyo-disco",
	},
	{
		Key:         "friday",
		Name:        "Friday Nite Heat",
		Description: "Weekend party energy",
		URL:         "https://soundcloud.com/poolsuite/sets/friday-nite-heat",
	},
	{
		Key:         "hangover",
		Name:        "Hangover Club",
		Description: "Recovery tunes for the morning after",
		URL:         "https://soundcloud.com/poolsuite/sets/hangover-club",
	},
}

// Builtin returns the Poolsuite playlists.
func Builtin() []*Playlist {
	return builtin
}

// All returns the built-in playlists followed by the custom ones from
// the configuration. Custom entries never shadow built-in keys.
func All() []*Playlist {
	all := append([]*Playlist{}, builtin...)

	for _, entry := range viper.GetStringSlice(key.PlaylistExtra) {
		p, err := ParseExtra(entry)
		if err != nil {
			log.Warnf("ignoring %s entry %q: %s", key.PlaylistExtra, entry, err)
			continue
		}

		if lo.ContainsBy(all, func(q *Playlist) bool { return q.Key == p.Key }) {
			log.Warnf("ignoring %s entry %q: key already used", key.PlaylistExtra, entry)
			continue
		}

		all = append(all, p)
	}

	return all
}

// ParseExtra parses a "key=url" configuration entry.
func ParseExtra(entry string) (*Playlist, error) {
	k, u, ok := strings.Cut(entry, "=")
	k, u = strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(u)

	if !ok || k == "" || u == "" {
		return nil, fmt.Errorf("expected key=url")
	}

	if strings.ContainsAny(k, " \t") {
		return nil, fmt.Errorf("key must not contain spaces")
	}

	if !strings.HasPrefix(u, "https://") && !strings.HasPrefix(u, "http://") {
		return nil, fmt.Errorf("url must be http(s)")
	}

	return &Playlist{
		Key:    k,
		Name:   util.Capitalize(k),
		URL:    u,
		Custom: true,
	}, nil
}

// Keys returns every playable key in catalogue order.
func Keys() []string {
	return lo.Map(All(), func(p *Playlist, _ int) string {
		return p.Key
	})
}

// Get looks a playlist up by key, case-insensitively.
func Get(name string) (*Playlist, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	p, ok := lo.Find(All(), func(p *Playlist) bool {
		return p.Key == name
	})
	if ok {
		return p, nil
	}

	if suggestion, ok := Suggest(name).Get(); ok {
		return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknown, name, suggestion)
	}

	return nil, fmt.Errorf("%w %q", ErrUnknown, name)
}

// Suggest returns the key closest to name, if any is close enough.
func Suggest(name string) mo.Option[string] {
	keys := Keys()
	if name == "" || len(keys) == 0 {
		return mo.None[string]()
	}

	// keys that contain the typed letters in order
	ranks := fuzzy.RankFindNormalizedFold(name, keys)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return mo.Some(ranks[0].Target)
	}

	closest := lo.MinBy(keys, func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})

	if levenshtein.Distance(name, closest) > max(2, len(closest)/2) {
		return mo.None[string]()
	}

	return mo.Some(closest)
}
