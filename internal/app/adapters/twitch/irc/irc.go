package irc

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"twitchrelay/internal/app/adapters/metrics"
	"twitchrelay/internal/app/infrastructure/config"
	"twitchrelay/internal/app/ports"
	"twitchrelay/pkg/logger"
)

// conn is the byte-stream surface the client needs from a socket. net.Conn
// satisfies it directly; the websocket transport adapts to it.
type conn interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadDeadline(t time.Time) error
}

// Client owns the socket and the connection state. It never retries on its
// own; the Supervisor decides when to call Connect again.
type Client struct {
	log logger.Logger
	cfg *config.Config

	channels map[string]bool // normalized room set, immutable after New

	state atomic.Int32

	mu   sync.Mutex
	conn conn
}

func NewClient(log logger.Logger, cfg *config.Config) *Client {
	channels := make(map[string]bool, len(cfg.App.Channels))
	for _, ch := range cfg.App.Channels {
		channels[ch] = true
	}

	return &Client{
		log:      log,
		cfg:      cfg,
		channels: channels,
	}
}

func (c *Client) State() ports.ConnState {
	return ports.ConnState(c.state.Load())
}

func (c *Client) setState(s ports.ConnState) {
	c.state.Store(int32(s))
	metrics.ConnectionState.Set(float64(s))
}

// MarkDisconnected flips the state without touching the socket. Used for the
// server-ordered reconnect, where the next read is expected to fail anyway.
func (c *Client) MarkDisconnected() {
	c.setState(ports.StateDisconnected)
}

// Connect dials the server and performs the login sequence: PASS, NICK,
// capability requests, then one JOIN per configured room.
func (c *Client) Connect() error {
	c.setState(ports.StateConnecting)

	cn, err := c.dial()
	if err != nil {
		c.setState(ports.StateDisconnected)
		metrics.ConnectFailures.Inc()
		return fmt.Errorf("dial %s: %w", c.addr(), err)
	}

	c.mu.Lock()
	c.conn = cn
	c.mu.Unlock()
	c.setState(ports.StateConnected)

	lines := []string{
		"PASS oauth:" + strings.TrimPrefix(c.cfg.App.OAuth, "oauth:"),
		"NICK " + c.cfg.App.Username,
		"CAP REQ :twitch.tv/membership",
		"CAP REQ :twitch.tv/tags",
		"CAP REQ :twitch.tv/commands",
	}
	for _, ch := range c.cfg.App.Channels {
		lines = append(lines, "JOIN #"+ch)
	}

	for _, line := range lines {
		if err := c.SendRaw(line); err != nil {
			c.Disconnect()
			return fmt.Errorf("login sequence: %w", err)
		}
	}

	c.log.Info("connected to IRC", slog.String("addr", c.addr()), slog.Int("channels", len(c.cfg.App.Channels)))
	return nil
}

func (c *Client) addr() string {
	return fmt.Sprintf("%s:%d", c.cfg.IRC.Server, c.cfg.IRC.Port)
}

func (c *Client) dial() (conn, error) {
	timeout := time.Duration(c.cfg.IRC.ConnectTimeoutSecs) * time.Second

	switch c.cfg.IRC.Transport {
	case "tls":
		return tls.DialWithDialer(&net.Dialer{Timeout: timeout}, "tcp", c.addr(), &tls.Config{MinVersion: tls.VersionTLS12})
	case "ws":
		return dialWS(fmt.Sprintf("wss://%s:%d", c.cfg.IRC.Server, c.cfg.IRC.Port), timeout)
	default:
		return net.DialTimeout("tcp", c.addr(), timeout)
	}
}

// Disconnect is idempotent; close errors are swallowed.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.setState(ports.StateDisconnected)
}

// SendRaw writes one line with the protocol terminator. A write failure is
// treated as a detected disconnect, not merely a logged warning.
func (c *Client) SendRaw(line string) error {
	if c.State() != ports.StateConnected {
		return fmt.Errorf("send %q: not connected", firstWord(line))
	}

	c.mu.Lock()
	cn := c.conn
	c.mu.Unlock()
	if cn == nil {
		return fmt.Errorf("send %q: no socket", firstWord(line))
	}

	if _, err := cn.Write([]byte(line + "\r\n")); err != nil {
		c.setState(ports.StateDisconnected)
		return fmt.Errorf("send %q: %w", firstWord(line), err)
	}

	c.log.Trace("line sent", slog.String("command", firstWord(line)))
	return nil
}

// SendChat sends text to a room. An empty channel targets the first
// configured room; a room outside the configured set is refused.
func (c *Client) SendChat(text, channel string) error {
	if channel == "" {
		channel = c.cfg.App.Channels[0]
	}
	channel = strings.ToLower(strings.TrimPrefix(channel, "#"))

	if !c.channels[channel] {
		err := fmt.Errorf("channel %q is not joined", channel)
		c.log.Error("refusing to send chat message", err)
		return err
	}
	if len(text) >= 500 {
		err := fmt.Errorf("message too long (%d chars)", len(text))
		c.log.Error("refusing to send chat message", err, slog.String("channel", channel))
		return err
	}

	return c.SendRaw(fmt.Sprintf("PRIVMSG #%s :%s", channel, text))
}

// readChunk performs one bounded read so the caller stays responsive to its
// liveness check and stop signal.
func (c *Client) readChunk(buf []byte, timeout time.Duration) (int, error) {
	c.mu.Lock()
	cn := c.conn
	c.mu.Unlock()
	if cn == nil {
		return 0, net.ErrClosed
	}

	_ = cn.SetReadDeadline(time.Now().Add(timeout))
	return cn.Read(buf)
}

func firstWord(line string) string {
	if i := strings.IndexByte(line, ' '); i != -1 {
		return line[:i]
	}
	return line
}
