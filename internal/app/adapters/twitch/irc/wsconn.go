package irc

import (
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsConn adapts a websocket connection to the byte-stream surface the line
// framer consumes; Twitch serves the same IRC protocol on irc-ws endpoints.
// Reads are pumped through a goroutine because a deadline miss on a raw
// websocket read poisons the connection, while the session loop relies on
// short read timeouts being survivable.
type wsConn struct {
	ws *websocket.Conn

	frames    chan []byte
	errCh     chan error
	done      chan struct{}
	closeOnce sync.Once

	rest     []byte
	deadline time.Time
}

func dialWS(url string, timeout time.Duration) (conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	ws, resp, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c := &wsConn{
		ws:     ws,
		frames: make(chan []byte, 8),
		errCh:  make(chan error, 1),
		done:   make(chan struct{}),
	}
	go c.pump()

	return c, nil
}

func (c *wsConn) pump() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.errCh <- err
			close(c.frames)
			return
		}

		select {
		case c.frames <- data:
		case <-c.done:
			return
		}
	}
}

func (c *wsConn) Read(p []byte) (int, error) {
	if len(c.rest) > 0 {
		n := copy(p, c.rest)
		c.rest = c.rest[n:]
		return n, nil
	}

	var expire <-chan time.Time
	if !c.deadline.IsZero() {
		timer := time.NewTimer(time.Until(c.deadline))
		defer timer.Stop()
		expire = timer.C
	}

	select {
	case data, ok := <-c.frames:
		if !ok {
			return 0, <-c.errCh
		}
		n := copy(p, data)
		c.rest = data[n:]
		return n, nil
	case <-c.done:
		return 0, net.ErrClosed
	case <-expire:
		return 0, timeoutError{}
	}
}

func (c *wsConn) Write(p []byte) (int, error) {
	if err := c.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close releases the pump even when it is blocked handing off a frame, so a
// reconnect cycle never strands a goroutine.
func (c *wsConn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return c.ws.Close()
}

func (c *wsConn) SetReadDeadline(t time.Time) error {
	c.deadline = t
	return nil
}

// timeoutError mirrors the net package's deadline error so the session loop
// handles both transports the same way.
type timeoutError struct{}

func (timeoutError) Error() string { return "read deadline exceeded" }
func (timeoutError) Timeout() bool { return true }

func (timeoutError) Temporary() bool { return true }
