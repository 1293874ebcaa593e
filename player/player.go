// Package player drives an external mpv process over its JSON-IPC socket.
//
// A Channel is the transport: one unix socket connection, newline framed,
// correlating replies with requests by request id and dispatching events.
// An MPV is the controller bound to one process and its Channel at a time.
package player

import (
	"errors"
	"fmt"
)

var (
	// ErrSpawn is returned when the player process cannot be started.
	ErrSpawn = errors.New("player spawn failed")

	// ErrConnect is returned when the control socket never becomes usable.
	ErrConnect = errors.New("player connect failed")

	// ErrClosed is returned for requests on a channel that has shut down.
	ErrClosed = errors.New("player channel closed")

	// ErrTimeout is returned when a request gets no reply in time.
	ErrTimeout = errors.New("player request timed out")

	// ErrCommand is wrapped by every CommandError.
	ErrCommand = errors.New("player command failed")
)

// CommandError is a reply whose error field is not "success".
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("mpv %s: %s", e.Command, e.Message)
}

func (e *CommandError) Unwrap() error {
	return ErrCommand
}

// ConnState is the lifecycle of one controller connection.
type ConnState int

const (
	Disconnected ConnState = iota
	Connecting
	Connected
	Closed
)

// String returns the string representation of the state.
func (s ConnState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Observed property names.
const (
	PropertyPosition = "playback-time"
	PropertyDuration = "duration"
	PropertyPause    = "pause"
)

// Event names understood by the channel.
const (
	EventPropertyChange = "property-change"
	EventEndFile        = "end-file"
)
