package player

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/poolsuite-cli/poolsuite/config"
	"github.com/poolsuite-cli/poolsuite/constant"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/poolsuite-cli/poolsuite/where"
	"github.com/spf13/viper"
)

// quitGrace is how long a quitting process may take before it is killed.
const quitGrace = 500 * time.Millisecond

// Options configure an MPV controller.
type Options struct {
	// Executable is the mpv binary name or path.
	Executable string

	// SocketDir is where control sockets are created. Defaults to os.TempDir().
	SocketDir string

	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// DefaultOptions returns options read from the configuration.
func DefaultOptions() *Options {
	return &Options{
		Executable:     viper.GetString(key.PlayerExecutable),
		SocketDir:      where.Temp(),
		ConnectTimeout: config.Millis(key.PlayerConnectTimeout),
		RequestTimeout: config.Millis(key.PlayerRequestTimeout),
	}
}

// MPV controls one mpv process at a time.
type MPV struct {
	options Options

	mu         sync.Mutex
	state      ConnState
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	channel    *Channel
	end        *endSignal
	onTime     func(position, duration float64)
}

// NewMPV creates a controller. Nothing is spawned until Play.
func NewMPV(options *Options) *MPV {
	if options == nil {
		options = DefaultOptions()
	}

	o := *options
	if o.Executable == "" {
		o.Executable = "mpv"
	}
	if o.SocketDir == "" {
		o.SocketDir = os.TempDir()
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectBudget
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = defaultRequestTimeout
	}

	return &MPV{
		options: o,
		state:   Disconnected,
		end:     firedEndSignal(),
	}
}

// Play tears down any previous process, then spawns mpv for rawURL and
// connects to it. It returns once the player is controllable.
func (m *MPV) Play(ctx context.Context, rawURL string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("%w: invalid media target: %w", ErrSpawn, err)
	}

	_ = m.Quit()

	socketPath, err := m.newSocketPath()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSpawn, err)
	}
	_ = os.Remove(socketPath)

	end := newEndSignal()

	m.mu.Lock()
	m.state = Connecting
	m.socketPath = socketPath
	m.end = end
	m.onTime = nil
	m.mu.Unlock()

	args := []string{
		"--no-video",
		"--really-quiet",
		"--no-terminal",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		safeURL,
	}

	cmd := exec.Command(m.options.Executable, args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		m.abandon(end)
		return fmt.Errorf("%w: start %s: %w", ErrSpawn, m.options.Executable, err)
	}

	// reap the process so it never lingers as a zombie
	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	channel, err := Establish(ctx, socketPath, &ChannelOptions{
		ConnectBudget:  m.options.ConnectTimeout,
		RequestTimeout: m.options.RequestTimeout,
		Exited:         exited,
	})
	if err != nil {
		log.Warnf("killing mpv: %s", err)
		_ = killProcess(cmd)
		<-exited
		_ = os.Remove(socketPath)
		m.abandon(end)
		return err
	}

	channel.OnProperty(func(name string, _ float64) {
		m.handleProperty(channel, name)
	})
	channel.OnEnd(end.fire)

	go func() {
		select {
		case <-channel.Done():
		case <-exited:
		}
		end.fire()
	}()

	m.mu.Lock()
	m.cmd = cmd
	m.exited = exited
	m.channel = channel
	m.state = Connected
	m.mu.Unlock()

	log.Infof("mpv started (pid %d) on %s", cmd.Process.Pid, socketPath)
	return nil
}

// abandon marks a failed play attempt as closed and ends it.
func (m *MPV) abandon(end *endSignal) {
	m.mu.Lock()
	m.state = Closed
	m.socketPath = ""
	m.mu.Unlock()

	end.fire()
}

func (m *MPV) newSocketPath() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}

	name := fmt.Sprintf("%s-%d-%x.sock", constant.Poolsuite, os.Getpid(), randomBytes)
	return filepath.Join(m.options.SocketDir, name), nil
}

// Quit stops the current process and releases its socket.
// It is safe to call at any time, any number of times.
func (m *MPV) Quit() error {
	m.mu.Lock()
	cmd, exited, channel, socketPath, end := m.cmd, m.exited, m.channel, m.socketPath, m.end
	m.cmd, m.exited, m.channel, m.socketPath = nil, nil, nil, ""
	if cmd != nil {
		m.state = Closed
	}
	m.mu.Unlock()

	if cmd == nil {
		return nil
	}

	if channel != nil {
		_ = channel.Notify("quit")
	}

	select {
	case <-exited:
	case <-time.After(quitGrace):
		log.Debugf("mpv did not quit in %s, killing", quitGrace)
		_ = killProcess(cmd)
		<-exited
	}

	if channel != nil {
		channel.Close()
	}

	if socketPath != "" {
		_ = os.Remove(socketPath)
	}

	end.fire()
	return nil
}

// Seek moves playback by delta seconds relative to the current position.
func (m *MPV) Seek(ctx context.Context, delta float64) error {
	channel, err := m.current()
	if err != nil {
		return err
	}

	_, err = channel.Request(ctx, "seek", delta, "relative")
	return err
}

// Position returns the playback position in seconds, or 0 if unknown.
func (m *MPV) Position(ctx context.Context) float64 {
	return m.floatProperty(ctx, PropertyPosition)
}

// Duration returns the media duration in seconds, or 0 if unknown.
func (m *MPV) Duration(ctx context.Context) float64 {
	return m.floatProperty(ctx, PropertyDuration)
}

// TogglePause flips the pause state.
func (m *MPV) TogglePause(ctx context.Context) error {
	channel, err := m.current()
	if err != nil {
		return err
	}

	paused, err := m.pauseProperty(ctx, channel)
	if err != nil {
		return err
	}

	_, err = channel.Request(ctx, "set_property", PropertyPause, !paused)
	return err
}

// IsPaused reports whether playback is paused. Failures report false.
func (m *MPV) IsPaused(ctx context.Context) bool {
	channel, err := m.current()
	if err != nil {
		return false
	}

	paused, err := m.pauseProperty(ctx, channel)
	if err != nil {
		return false
	}

	return paused
}

// OnTimeChange sets the handler called on every position update.
// It is cleared by the next Play.
func (m *MPV) OnTimeChange(handler func(position, duration float64)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onTime = handler
}

// OnEnd sets a one-shot hook for the end of the current playback.
func (m *MPV) OnEnd(handler func()) {
	m.mu.Lock()
	end := m.end
	m.mu.Unlock()

	end.setHook(handler)
}

// WaitForEnd returns a channel closed when the current playback ends:
// end of file, lost connection, process exit or Quit.
func (m *MPV) WaitForEnd() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.end.done
}

// State returns the connection state.
func (m *MPV) State() ConnState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Socket returns the IPC socket path of the current process.
func (m *MPV) Socket() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.socketPath
}

func (m *MPV) current() (*Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.channel == nil || m.state != Connected {
		return nil, ErrClosed
	}

	return m.channel, nil
}

func (m *MPV) handleProperty(channel *Channel, name string) {
	if name != PropertyPosition {
		return
	}

	m.mu.Lock()
	handler := m.onTime
	m.mu.Unlock()

	if handler == nil {
		return
	}

	handler(channel.Telemetry())
}

// floatProperty returns 0 on any failure.
func (m *MPV) floatProperty(ctx context.Context, name string) float64 {
	channel, err := m.current()
	if err != nil {
		return 0
	}

	data, err := channel.Request(ctx, "get_property", name)
	if err != nil {
		log.Tracef("mpv get_property %s: %s", name, err)
		return 0
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return 0
	}

	return value
}

func (m *MPV) pauseProperty(ctx context.Context, channel *Channel) (bool, error) {
	data, err := channel.Request(ctx, "get_property", PropertyPause)
	if err != nil {
		return false, err
	}

	var paused bool
	if err := json.Unmarshal(data, &paused); err != nil {
		return false, fmt.Errorf("property %s: %w", PropertyPause, err)
	}

	return paused, nil
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// arguments starting with - would be read as mpv flags
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
