package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poolsuite-cli/poolsuite/log"
)

const (
	defaultConnectBudget  = 5 * time.Second
	defaultRequestTimeout = 3 * time.Second
	defaultPollInterval   = 100 * time.Millisecond
	readBufferSize        = 4096
)

// observed lists the properties subscribed to right after connecting.
var observed = []struct {
	id   int
	name string
}{
	{1, PropertyPosition},
	{2, PropertyDuration},
}

// ChannelOptions configure Establish.
type ChannelOptions struct {
	// ConnectBudget bounds the wait for the socket to appear and accept.
	ConnectBudget time.Duration

	// PollInterval is the delay between connection attempts.
	PollInterval time.Duration

	// RequestTimeout bounds every Request.
	RequestTimeout time.Duration

	// Exited, when closed, aborts the connection wait early.
	Exited <-chan struct{}
}

type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type reply struct {
	data json.RawMessage
	err  error
}

// Channel is a single connection to an mpv IPC socket.
type Channel struct {
	conn    net.Conn
	timeout time.Duration
	nextID  atomic.Int64
	dropped atomic.Int64

	writeMu sync.Mutex

	mu         sync.Mutex
	closed     bool
	pending    map[int64]chan reply
	commands   map[int64]string
	onProperty PropertyHandler
	onEnd      func()
	position   float64
	duration   float64

	done      chan struct{}
	closeOnce sync.Once
}

// Establish waits for the socket at path, connects to it and subscribes to
// position and duration changes.
func Establish(ctx context.Context, path string, options *ChannelOptions) (*Channel, error) {
	if options == nil {
		options = &ChannelOptions{}
	}

	budget := options.ConnectBudget
	if budget <= 0 {
		budget = defaultConnectBudget
	}

	interval := options.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	conn, err := dial(ctx, path, budget, interval, options.Exited)
	if err != nil {
		return nil, err
	}

	c := newChannel(conn, options.RequestTimeout)
	go c.readLoop()

	for _, prop := range observed {
		if err := c.Notify("observe_property", prop.id, prop.name); err != nil {
			c.Close()
			return nil, fmt.Errorf("%w: observe %s: %w", ErrConnect, prop.name, err)
		}
	}

	log.Debugf("mpv channel established on %s", path)
	return c, nil
}

func newChannel(conn net.Conn, timeout time.Duration) *Channel {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Channel{
		conn:     conn,
		timeout:  timeout,
		pending:  make(map[int64]chan reply),
		commands: make(map[int64]string),
		done:     make(chan struct{}),
	}
}

// dial polls until path exists and accepts a connection.
func dial(ctx context.Context, path string, budget, interval time.Duration, exited <-chan struct{}) (net.Conn, error) {
	deadline := time.NewTimer(budget)
	defer deadline.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		if _, err := os.Stat(path); err == nil {
			var d net.Dialer
			conn, err := d.DialContext(ctx, "unix", path)
			if err == nil {
				return conn, nil
			}
			lastErr = err
		} else {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrConnect, ctx.Err())
		case <-exited:
			return nil, fmt.Errorf("%w: process exited before socket was ready", ErrConnect)
		case <-deadline.C:
			return nil, fmt.Errorf("%w: socket %s not ready after %s: %w", ErrConnect, path, budget, lastErr)
		case <-ticker.C:
		}
	}
}

// Request sends a command and waits for its reply.
// Replies may arrive in any order; they are matched by request id.
func (c *Channel) Request(ctx context.Context, args ...any) (json.RawMessage, error) {
	id := c.nextID.Add(1)
	replies := make(chan reply, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[id] = replies
	c.commands[id] = commandName(args)
	c.mu.Unlock()

	if err := c.write(id, args); err != nil {
		c.forget(id)
		return nil, err
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case r := <-replies:
		return r.data, r.err
	case <-timer.C:
		c.forget(id)
		return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, commandName(args), c.timeout)
	case <-ctx.Done():
		c.forget(id)
		return nil, ctx.Err()
	}
}

// Notify writes a command without waiting for a reply.
func (c *Channel) Notify(args ...any) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return ErrClosed
	}

	return c.write(c.nextID.Add(1), args)
}

// OnProperty sets the handler for property changes, replacing any previous one.
func (c *Channel) OnProperty(handler PropertyHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onProperty = handler
}

// OnEnd sets the handler for end-file events, replacing any previous one.
func (c *Channel) OnEnd(handler func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onEnd = handler
}

// Telemetry returns the last observed position and duration in seconds.
func (c *Channel) Telemetry() (position, duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.position, c.duration
}

// Dropped returns the number of inbound lines that could not be decoded.
func (c *Channel) Dropped() int {
	return int(c.dropped.Load())
}

// Done is closed once the channel has shut down.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Close shuts the channel down, failing every pending request with ErrClosed.
func (c *Channel) Close() {
	c.shutdown()
}

func (c *Channel) shutdown() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		for id, replies := range c.pending {
			replies <- reply{err: ErrClosed}
			delete(c.pending, id)
		}
		clear(c.commands)
		c.mu.Unlock()

		_ = c.conn.Close()
		close(c.done)
	})
}

func (c *Channel) write(id int64, args []any) error {
	payload, err := json.Marshal(request{Command: args, RequestID: id})
	if err != nil {
		return fmt.Errorf("encode %s: %w", commandName(args), err)
	}
	payload = append(payload, '\n')

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if _, err := c.conn.Write(payload); err != nil {
		c.shutdown()
		return fmt.Errorf("%w: write %s: %w", ErrClosed, commandName(args), err)
	}

	return nil
}

func (c *Channel) forget(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, id)
	delete(c.commands, id)
}

// readLoop reads until the connection fails, then shuts the channel down.
func (c *Channel) readLoop() {
	defer c.shutdown()

	var decoder lineDecoder
	buf := make([]byte, readBufferSize)

	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			for _, msg := range decoder.Feed(buf[:n]) {
				c.dispatch(msg)
			}
			c.dropped.Store(int64(decoder.Dropped()))
		}

		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Debugf("mpv channel read: %s", err)
			}
			return
		}
	}
}

func (c *Channel) dispatch(msg *message) {
	switch {
	case msg.isEvent():
		c.dispatchEvent(msg)
	case msg.isReply():
		c.resolve(msg)
	}
}

func (c *Channel) resolve(msg *message) {
	id := *msg.RequestID

	c.mu.Lock()
	replies, ok := c.pending[id]
	command := c.commands[id]
	delete(c.pending, id)
	delete(c.commands, id)
	c.mu.Unlock()

	// replies to notifications and late replies have nobody waiting
	if !ok {
		return
	}

	if msg.Error != "" && msg.Error != "success" {
		replies <- reply{err: &CommandError{Command: command, Message: msg.Error}}
		return
	}

	replies <- reply{data: msg.Data}
}

func commandName(args []any) string {
	if len(args) == 0 {
		return "<empty>"
	}

	return fmt.Sprint(args[0])
}
