package irc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
	"twitchrelay/internal/app/adapters/metrics"
	"twitchrelay/internal/app/ports"
	"twitchrelay/pkg/logger"
)

// session drives one connected read loop: bounded reads feed the framer,
// complete lines go through the parser to the dispatcher, and an outbound
// keepalive is emitted when the connection has been quiet too long. The
// liveness check is cooperative, so its granularity is bounded by the read
// timeout.
type session struct {
	log      logger.Logger
	client   *Client
	dispatch *Dispatcher
	framer   *Framer

	readTimeout  time.Duration
	pingInterval time.Duration
}

// run returns when the peer closes, a read fails, the dispatcher marked the
// connection down, or ctx is cancelled. A nil error means an orderly end.
func (s *session) run(ctx context.Context) error {
	framer := s.framer
	framer.Reset()
	buf := make([]byte, 4096)
	lastPing := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if s.client.State() != ports.StateConnected {
			return nil
		}

		if time.Since(lastPing) > s.pingInterval {
			if err := s.client.SendRaw("PING :tmi.twitch.tv"); err != nil {
				return fmt.Errorf("keepalive: %w", err)
			}
			metrics.KeepalivesSent.Inc()
			lastPing = time.Now()
		}

		n, err := s.client.readChunk(buf, s.readTimeout)
		if n > 0 {
			framer.Feed(buf[:n])
			for {
				line, ok := framer.Next()
				if !ok {
					break
				}
				metrics.LinesReceived.Inc()
				s.dispatch.Dispatch(Parse(line))
			}
		}

		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				continue
			}
			if errors.Is(err, io.EOF) {
				s.log.Warn("server closed the connection")
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
	}
}
