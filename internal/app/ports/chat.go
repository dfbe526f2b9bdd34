package ports

// ConnState is the transport's connection state. It is owned exclusively by
// the IRC client; everything else learns connectivity by querying it.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	}
	return "unknown"
}

type ChatPort interface {
	Connect() error
	Disconnect()
	State() ConnState

	// MarkDisconnected flips the state without closing the socket, used when
	// the server orders a reconnect and the next read is expected to fail.
	MarkDisconnected()

	SendRaw(line string) error
	SendChat(text, channel string) error
}

// MessageHandler receives every relayed chat message: target room as it
// appeared on the wire (with the # marker), sender login and the full text.
type MessageHandler func(channel, username, text string)

// StatusSource exposes liveness details for the operational HTTP surface.
type StatusSource interface {
	ConnectionState() ConnState
	SupervisorState() string
}
