// Package util provides a collection of domain-agnostic utility functions and cross-platform helpers.
package util

// Mailbox is a single-slot channel that only ever holds the most recent value.
// Put never blocks: a value that was not received yet is replaced.
type Mailbox[T any] struct {
	ch chan T
}

// NewMailbox creates an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Put stores v, discarding any value still waiting in the slot.
func (m *Mailbox[T]) Put(v T) {
	for {
		select {
		case m.ch <- v:
			return
		default:
		}

		select {
		case <-m.ch:
		default:
		}
	}
}

// C returns the receive side of the mailbox.
func (m *Mailbox[T]) C() <-chan T {
	return m.ch
}

// Take returns the pending value, if any, without blocking.
func (m *Mailbox[T]) Take() (item T, ok bool) {
	select {
	case item = <-m.ch:
		return item, true
	default:
		return
	}
}
