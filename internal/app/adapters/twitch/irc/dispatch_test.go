package irc

import (
	"errors"
	"fmt"
	"testing"
	"time"
	"twitchrelay/internal/app/ports"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) SetLogLevel(string)          {}
func (nopLogger) Trace(string, ...any)        {}
func (nopLogger) Debug(string, ...any)        {}
func (nopLogger) Info(string, ...any)         {}
func (nopLogger) Warn(string, ...any)         {}
func (nopLogger) Error(string, error, ...any) {}
func (nopLogger) Fatal(string, error, ...any) {}

type mockChat struct {
	state   ports.ConnState
	raw     []string
	chat    []string
	sendErr error
}

func (m *mockChat) Connect() error         { return nil }
func (m *mockChat) Disconnect()            { m.state = ports.StateDisconnected }
func (m *mockChat) State() ports.ConnState { return m.state }
func (m *mockChat) MarkDisconnected()      { m.state = ports.StateDisconnected }

func (m *mockChat) SendRaw(line string) error {
	m.raw = append(m.raw, line)
	return m.sendErr
}

func (m *mockChat) SendChat(text, channel string) error {
	m.chat = append(m.chat, fmt.Sprintf("#%s :%s", channel, text))
	return m.sendErr
}

func newTestDispatcher(chat *mockChat, announce string, onMessage ports.MessageHandler) *Dispatcher {
	return NewDispatcher(nopLogger{}, chat, DispatchConfig{
		AnnounceChannel: announce,
		GreetDelay:      time.Millisecond,
	}, onMessage)
}

func TestDispatcher_KeepaliveReply(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}
	d := newTestDispatcher(chat, "", nil)

	d.Dispatch(Parse("PING :tmi.twitch.tv"))

	assert.Equal(t, []string{"PONG :tmi.twitch.tv"}, chat.raw)
}

func TestDispatcher_KeepaliveWithoutToken(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}
	d := newTestDispatcher(chat, "", nil)

	d.Dispatch(Parse("PING"))

	assert.Empty(t, chat.raw)
}

func TestDispatcher_OneShotGreeting(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}
	d := newTestDispatcher(chat, "foo", nil)

	// two JOIN confirmations, e.g. one per reconnect
	d.Dispatch(Parse(":bot!bot@bot.tmi.twitch.tv JOIN #foo"))
	d.Dispatch(Parse(":bot!bot@bot.tmi.twitch.tv JOIN #foo"))

	assert.Equal(t, []string{"#foo :hi"}, chat.chat)
}

func TestDispatcher_GreetingCaseInsensitive(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}
	d := newTestDispatcher(chat, "foo", nil)

	d.Dispatch(Parse(":bot!bot@bot.tmi.twitch.tv JOIN #FOO"))

	assert.Equal(t, []string{"#foo :hi"}, chat.chat)
}

func TestDispatcher_GreetingOnlyForAnnounceChannel(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}
	d := newTestDispatcher(chat, "foo", nil)

	d.Dispatch(Parse(":bot!bot@bot.tmi.twitch.tv JOIN #bar"))

	assert.Empty(t, chat.chat)
}

func TestDispatcher_NoAnnounceChannelNoGreeting(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}
	d := newTestDispatcher(chat, "", nil)

	d.Dispatch(Parse(":bot!bot@bot.tmi.twitch.tv JOIN #foo"))

	assert.Empty(t, chat.chat)
}

func TestDispatcher_GreetingMarkedAfterFailedSend(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected, sendErr: errors.New("broken pipe")}
	d := newTestDispatcher(chat, "foo", nil)

	d.Dispatch(Parse(":bot!bot@bot.tmi.twitch.tv JOIN #foo"))
	chat.sendErr = nil
	d.Dispatch(Parse(":bot!bot@bot.tmi.twitch.tv JOIN #foo"))

	// at most once per process lifetime, even when the first send failed
	assert.Len(t, chat.chat, 1)
}

func TestDispatcher_ChatMessageRelayed(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}

	var gotChannel, gotUsername, gotText string
	d := newTestDispatcher(chat, "", func(channel, username, text string) {
		gotChannel, gotUsername, gotText = channel, username, text
	})

	d.Dispatch(Parse("@badge=1;color=#fff :nick!user@host PRIVMSG #room :hello world"))

	assert.Equal(t, "#room", gotChannel)
	assert.Equal(t, "nick", gotUsername)
	assert.Equal(t, "hello world", gotText)
}

func TestDispatcher_ChatMessageMissingParams(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}

	called := false
	d := newTestDispatcher(chat, "", func(channel, username, text string) {
		called = true
	})

	d.Dispatch(Parse(":nick!user@host PRIVMSG #room"))

	assert.False(t, called)
}

func TestDispatcher_ForcedReconnect(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}
	d := newTestDispatcher(chat, "", nil)

	d.Dispatch(Parse(":tmi.twitch.tv RECONNECT"))

	assert.Equal(t, ports.StateDisconnected, chat.state)
}

func TestDispatcher_UnknownCommandIgnored(t *testing.T) {
	chat := &mockChat{state: ports.StateConnected}
	d := newTestDispatcher(chat, "foo", nil)

	d.Dispatch(Parse(":tmi.twitch.tv CAP * ACK :twitch.tv/tags"))
	d.Dispatch(Parse(":someone!u@h PART #foo"))

	assert.Empty(t, chat.raw)
	assert.Empty(t, chat.chat)
	assert.Equal(t, ports.StateConnected, chat.state)
}
