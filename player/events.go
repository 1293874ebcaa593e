package player

import (
	"encoding/json"
	"sync"

	"github.com/poolsuite-cli/poolsuite/log"
)

// PropertyHandler receives numeric property-change notifications.
type PropertyHandler func(name string, value float64)

// dispatchEvent routes an inbound event to the registered handlers.
func (c *Channel) dispatchEvent(msg *message) {
	switch msg.Event {
	case EventPropertyChange:
		var data *float64
		// null data means the property is unavailable, e.g. no file loaded yet
		if len(msg.Data) == 0 || json.Unmarshal(msg.Data, &data) != nil || data == nil {
			return
		}
		value := *data

		c.mu.Lock()
		switch msg.Name {
		case PropertyPosition:
			c.position = value
		case PropertyDuration:
			c.duration = value
		}
		handler := c.onProperty
		c.mu.Unlock()

		if handler != nil {
			handler(msg.Name, value)
		}
	case EventEndFile:
		log.Debugf("mpv end-file (reason: %s)", msg.Reason)

		c.mu.Lock()
		handler := c.onEnd
		c.mu.Unlock()

		if handler != nil {
			handler()
		}
	default:
		log.Tracef("mpv event ignored: %s", msg.Event)
	}
}

// endSignal is fired at most once per playback.
// The hook registered on it runs exactly once, even if set after firing.
type endSignal struct {
	mu    sync.Mutex
	fired bool
	hook  func()
	done  chan struct{}
}

func newEndSignal() *endSignal {
	return &endSignal{done: make(chan struct{})}
}

// firedEndSignal returns a signal that has already ended.
func firedEndSignal() *endSignal {
	e := newEndSignal()
	e.fire()
	return e
}

func (e *endSignal) fire() {
	e.mu.Lock()
	if e.fired {
		e.mu.Unlock()
		return
	}

	e.fired = true
	hook := e.hook
	e.hook = nil
	close(e.done)
	e.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (e *endSignal) setHook(fn func()) {
	e.mu.Lock()
	if e.fired {
		e.mu.Unlock()
		if fn != nil {
			fn()
		}
		return
	}

	e.hook = fn
	e.mu.Unlock()
}
