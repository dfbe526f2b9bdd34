package irc

import (
	"github.com/prometheus/client_golang/prometheus"
	"log/slog"
	"strings"
	"time"
	"twitchrelay/internal/app/adapters/metrics"
	"twitchrelay/internal/app/ports"
	"twitchrelay/pkg/logger"
)

// Dispatcher maps one parsed event to a behavior. It runs on the session's
// single thread of control; the announced set carries across reconnects so
// a room is greeted at most once per process lifetime.
type Dispatcher struct {
	log  logger.Logger
	chat ports.ChatPort

	announceChannel string
	greetDelay      time.Duration
	greeting        string
	announced       map[string]bool

	onMessage ports.MessageHandler
}

func NewDispatcher(log logger.Logger, chat ports.ChatPort, cfg DispatchConfig, onMessage ports.MessageHandler) *Dispatcher {
	return &Dispatcher{
		log:             log,
		chat:            chat,
		announceChannel: cfg.AnnounceChannel,
		greetDelay:      cfg.GreetDelay,
		greeting:        "hi",
		announced:       make(map[string]bool),
		onMessage:       onMessage,
	}
}

type DispatchConfig struct {
	AnnounceChannel string
	GreetDelay      time.Duration
}

func (d *Dispatcher) Dispatch(msg *Message) {
	switch msg.Command {
	case "PING":
		d.handlePing(msg)
	case "001":
		d.log.Info("authenticated with server")
	case "JOIN":
		d.handleJoin(msg)
	case "PRIVMSG":
		d.handlePrivmsg(msg)
	case "NOTICE":
		d.handleNotice(msg)
	case "RECONNECT":
		d.log.Info("server requested reconnection")
		d.chat.MarkDisconnected()
	}
}

func (d *Dispatcher) handlePing(msg *Message) {
	if len(msg.Params) == 0 {
		return
	}

	token := strings.TrimPrefix(msg.Params[0], ":")
	if err := d.chat.SendRaw("PONG :" + token); err != nil {
		d.log.Error("failed to answer keepalive", err)
	}
}

func (d *Dispatcher) handleJoin(msg *Message) {
	if d.announceChannel == "" || len(msg.Params) == 0 {
		return
	}

	channel := strings.ToLower(strings.TrimPrefix(msg.Params[0], "#"))
	if channel != d.announceChannel || d.announced[channel] {
		return
	}

	// Grace window so the join settles server-side before speaking.
	time.Sleep(d.greetDelay)

	if err := d.chat.SendChat(d.greeting, channel); err != nil {
		d.log.Error("failed to send greeting", err, slog.String("channel", channel))
	} else {
		metrics.GreetingsSent.With(prometheus.Labels{"channel": channel}).Inc()
	}
	d.announced[channel] = true
}

func (d *Dispatcher) handlePrivmsg(msg *Message) {
	if len(msg.Params) < 2 {
		return
	}

	channel := msg.Params[0]
	text := Trailing(msg.Params[1:])
	username := SenderNick(msg.Prefix)

	d.log.Debug("chat message",
		slog.String("channel", channel),
		slog.String("username", username),
		slog.String("text", text))
	metrics.MessagesReceived.With(prometheus.Labels{"channel": channel}).Inc()

	if d.onMessage != nil {
		d.onMessage(channel, username, text)
	}
}

func (d *Dispatcher) handleNotice(msg *Message) {
	if len(msg.Params) < 2 {
		return
	}

	d.log.Info("server notice", slog.String("text", Trailing(msg.Params[1:])))
}
