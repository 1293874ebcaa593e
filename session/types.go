package session

import "github.com/poolsuite-cli/poolsuite/source"

// Key names delivered on the key channel.
const (
	KeySeekBack       = "left"
	KeySeekBackAlt    = ","
	KeySeekForward    = "right"
	KeySeekForwardAlt = "."
	KeyPause          = "space"
	KeyPauseAlt       = " "
	KeyNext           = "n"
	KeyNextAlt        = ">"
	KeyPrev           = "p"
	KeyPrevAlt        = "<"
	KeyQuit           = "q"
	KeyQuitAlt        = "escape"
	KeyInterrupt      = "ctrl+c"
	KeySwitch         = "tab"
)

// IntentKind is what should happen once the current track stops.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentNext
	IntentPrev
	IntentQuit
	IntentSwitch
)

func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentNext:
		return "next"
	case IntentPrev:
		return "prev"
	case IntentQuit:
		return "quit"
	case IntentSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// Intent is a pending navigation request. Target is set for IntentSwitch.
type Intent struct {
	Kind   IntentKind
	Target string
}

// Reason tells why a session ended.
type Reason int

const (
	ReasonEnd Reason = iota
	ReasonQuit
	ReasonSwitch
)

func (r Reason) String() string {
	switch r {
	case ReasonEnd:
		return "end"
	case ReasonQuit:
		return "quit"
	case ReasonSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// Result is the outcome of Session.Run.
type Result struct {
	Reason Reason

	// Target is the playlist to switch to when Reason is ReasonSwitch.
	Target string

	// Played counts the tracks the player was started for.
	Played int
}

// Snapshot is what a Renderer shows.
type Snapshot struct {
	Track *source.Track

	// Index is 1-based.
	Index int
	Total int

	// Position and Duration are in seconds.
	Position float64
	Duration float64
	Paused   bool

	PlaylistKey   string
	AvailableKeys []string

	// LoadingMessage is non-empty while something is being prepared.
	LoadingMessage string
}

// Loading reports whether the snapshot describes a loading step.
func (s Snapshot) Loading() bool {
	return s.LoadingMessage != ""
}

// Progress returns the played fraction in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 || s.Position <= 0 {
		return 0
	}

	return min(s.Position/s.Duration, 1)
}
