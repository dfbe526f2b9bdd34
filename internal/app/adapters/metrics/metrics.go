package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionState - 0 disconnected, 1 connecting, 2 connected.
	ConnectionState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bot_connection_state",
		Help: "Current IRC connection state (0 disconnected, 1 connecting, 2 connected)",
	})

	// ConnectFailures - failed connection attempts.
	ConnectFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_connect_failures_total",
		Help: "Total number of failed connection attempts",
	})

	// ReconnectsTotal - backoff cycles entered.
	ReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_reconnects_total",
		Help: "Total number of reconnect cycles",
	})

	// BackoffSeconds - the wait applied by the most recent backoff.
	BackoffSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bot_backoff_seconds",
		Help: "Delay of the most recent reconnect backoff in seconds",
	})

	// LinesReceived - complete protocol lines framed from the stream.
	LinesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_irc_lines_received_total",
		Help: "Total number of complete IRC lines received",
	})

	// MessagesReceived - relayed chat messages per channel.
	MessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_received_total",
			Help: "Total number of chat messages received per channel",
		},
		[]string{"channel"},
	)

	// KeepalivesSent - outbound liveness probes.
	KeepalivesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_keepalives_sent_total",
		Help: "Total number of outbound PING probes",
	})

	// GreetingsSent - one-shot announce greetings per channel.
	GreetingsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_greetings_sent_total",
			Help: "Total number of announce greetings sent per channel",
		},
		[]string{"channel"},
	)
)
