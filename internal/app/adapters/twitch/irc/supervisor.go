package irc

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"twitchrelay/internal/app/adapters/metrics"
	"twitchrelay/internal/app/infrastructure/config"
	"twitchrelay/internal/app/ports"
	"twitchrelay/pkg/logger"
)

// RunState is the supervisor's lifecycle state.
type RunState int32

const (
	RunConnecting RunState = iota
	RunRunning
	RunBackoff
	RunStopped
)

func (s RunState) String() string {
	switch s {
	case RunConnecting:
		return "connecting"
	case RunRunning:
		return "running"
	case RunBackoff:
		return "backoff"
	case RunStopped:
		return "stopped"
	}
	return "unknown"
}

// Supervisor keeps one bot connected indefinitely: connect, run the session,
// and on any failure or disconnect wait out an exponential backoff before
// retrying. Stop is the only path to the terminal state.
type Supervisor struct {
	log      logger.Logger
	cfg      *config.Config
	client   *Client
	dispatch *Dispatcher
	framer   *Framer
	backoff  *Backoff

	state atomic.Int32

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

func NewSupervisor(log logger.Logger, cfg *config.Config, client *Client, onMessage ports.MessageHandler) *Supervisor {
	ctx, cancel := context.WithCancel(context.Background())

	dispatch := NewDispatcher(log, client, DispatchConfig{
		AnnounceChannel: cfg.App.AnnounceChannel,
		GreetDelay:      time.Duration(cfg.IRC.GreetDelaySecs) * time.Second,
	}, onMessage)

	s := &Supervisor{
		log:      log,
		cfg:      cfg,
		client:   client,
		dispatch: dispatch,
		framer:   NewFramer(),
		backoff: NewBackoff(
			time.Duration(cfg.IRC.ReconnectDelaySecs)*time.Second,
			time.Duration(cfg.IRC.MaxReconnectDelaySecs)*time.Second,
		),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.state.Store(int32(RunConnecting))

	return s
}

// Run blocks until Stop is called. Safe to run in its own goroutine.
func (s *Supervisor) Run() {
	defer close(s.done)
	defer s.setState(RunStopped)

	s.log.Info("starting bot", slog.Any("channels", s.cfg.App.Channels))

	for {
		if s.ctx.Err() != nil {
			return
		}

		s.setState(RunConnecting)
		if err := s.client.Connect(); err != nil {
			s.log.Error("failed to connect", err)
		} else {
			s.backoff.Reset()
			s.setState(RunRunning)

			sess := &session{
				log:          s.log,
				client:       s.client,
				dispatch:     s.dispatch,
				framer:       s.framer,
				readTimeout:  time.Duration(s.cfg.IRC.ReadTimeoutSecs) * time.Second,
				pingInterval: time.Duration(s.cfg.IRC.PingIntervalSecs) * time.Second,
			}
			if err := sess.run(s.ctx); err != nil {
				s.log.Error("session ended", err)
			}
		}

		s.client.Disconnect()

		if s.ctx.Err() != nil {
			return
		}

		s.setState(RunBackoff)
		delay := s.backoff.Next()
		metrics.BackoffSeconds.Set(delay.Seconds())
		metrics.ReconnectsTotal.Inc()
		s.log.Info("reconnecting after backoff", slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}
}

// Stop is idempotent and safe to call from outside the loop. It cancels the
// run loop cooperatively and forces a disconnect; Done unblocks once the
// loop has wound down.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.client.Disconnect()
	})
}

func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

func (s *Supervisor) setState(st RunState) {
	s.state.Store(int32(st))
}

func (s *Supervisor) SupervisorState() string {
	return RunState(s.state.Load()).String()
}

func (s *Supervisor) ConnectionState() ports.ConnState {
	return s.client.State()
}
