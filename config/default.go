package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/poolsuite-cli/poolsuite/color"
	"github.com/poolsuite-cli/poolsuite/constant"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/style"
	"github.com/spf13/viper"
)

// Field is a configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env returns the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Poolsuite + "_" + EnvKeyReplacer.Replace(f.Key))
}

func (f *Field) typeName() string {
	if f.Value == nil {
		return "unknown"
	}
	return reflect.TypeOf(f.Value).String()
}

// Pretty describes the field for the terminal.
func (f *Field) Pretty() string {
	label := style.Fg(color.Blue)
	rows := [][2]string{
		{"Key:", style.Fg(color.Purple)(f.Key)},
		{"Env:", f.Env()},
		{"Value:", highlight(viper.Get(f.Key))},
		{"Default:", highlight(f.Value)},
		{"Type:", f.typeName()},
	}

	var b strings.Builder
	b.WriteString(style.Faint(f.Description))
	for _, row := range rows {
		fmt.Fprintf(&b, "\n%s %s", label(fmt.Sprintf("%-8s", row[0])), row[1])
	}

	return b.String()
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)(strconv.FormatBool(value))
		}
		return style.Fg(color.Red)(strconv.FormatBool(value))
	case string:
		return style.Fg(color.Yellow)(strconv.Quote(value))
	default:
		return fmt.Sprint(value)
	}
}

type fieldJSON struct {
	Key         string `json:"key"`
	Value       any    `json:"value"`
	Default     any    `json:"default"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldJSON{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// Default maps every key to its field.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables, in registration order.
var EnvExposed []string

func register(k string, v any, description string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}

	Default[k] = Field{Key: k, Value: v, Description: description}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.PlaylistDefault, "official", "Playlist to play when none is given.\nType \"poolsuite list\" to show available playlists")
	register(key.PlaylistShuffle, false, "Shuffle the play order by default")
	register(key.PlaylistExtra, []string{}, "Additional playlists in the form name=url.\nThe url must point to a SoundCloud set")

	register(key.PlayerExecutable, "mpv", "Media player executable to spawn")
	register(key.PlayerSeekSeconds, 10, "Seconds to seek with the left and right keys")
	register(key.PlayerConnectTimeout, 5000, "Milliseconds to wait for the player control socket to appear")
	register(key.PlayerRequestTimeout, 3000, "Milliseconds to wait for a reply from the player before giving up")

	register(key.TUIRefreshInterval, 500, "Milliseconds between two renders of the now playing screen")
	register(key.TUIMini, false, "Use the one-line renderer instead of the full screen interface")

	register(key.SoundcloudClientID, "", "SoundCloud API client id.\nDiscovered automatically from the web app if not set")
	register(key.SoundcloudCacheHours, 6, "Hours to keep resolved playlist track lists cached.\n0 disables the cache")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")

	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}
