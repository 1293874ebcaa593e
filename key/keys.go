// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playlist Selection - these keys choose what gets played when no argument is given.
const (
	PlaylistDefault = "playlist.default"
	PlaylistShuffle = "playlist.shuffle"
	PlaylistExtra   = "playlist.extra"
)

// Media Playback - these keys configure the external player process and its control socket.
const (
	PlayerExecutable     = "player.executable"
	PlayerSeekSeconds    = "player.seek_seconds"
	PlayerConnectTimeout = "player.connect_timeout"
	PlayerRequestTimeout = "player.request_timeout"
)

// Terminal User Interface (TUI) - these keys define the rendering behaviour.
const (
	TUIRefreshInterval = "tui.refresh_interval"
	TUIMini            = "tui.mini"
)

// Catalogue Service - these keys manage access to the SoundCloud API.
const (
	SoundcloudClientID   = "soundcloud.client_id"
	SoundcloudCacheHours = "soundcloud.cache_hours"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
