package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: App{
			OAuth:    "token",
			Username: "Bot",
			Channels: []string{"Foo", "#foo", "BAR"},
		},
	}
}

func TestValidate_NormalizesChannels(t *testing.T) {
	m := &Manager{}
	cfg := validConfig()

	require.NoError(t, m.validate(cfg))

	assert.Equal(t, []string{"foo", "bar"}, cfg.App.Channels)
	assert.Equal(t, "bot", cfg.App.Username)
}

func TestValidate_AnnounceChannelMustBeJoined(t *testing.T) {
	m := &Manager{}

	cfg := validConfig()
	cfg.App.AnnounceChannel = "#Foo"
	require.NoError(t, m.validate(cfg))
	assert.Equal(t, "foo", cfg.App.AnnounceChannel)

	cfg = validConfig()
	cfg.App.AnnounceChannel = "elsewhere"
	assert.Error(t, m.validate(cfg))
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{name: "missing_oauth", modify: func(cfg *Config) { cfg.App.OAuth = "" }},
		{name: "missing_username", modify: func(cfg *Config) { cfg.App.Username = "" }},
		{name: "missing_channels", modify: func(cfg *Config) { cfg.App.Channels = nil }},
		{name: "blank_channels", modify: func(cfg *Config) { cfg.App.Channels = []string{"", "#", "  "} }},
		{name: "bad_log_level", modify: func(cfg *Config) { cfg.App.LogLevel = "loud" }},
		{name: "bad_transport", modify: func(cfg *Config) { cfg.IRC.Transport = "udp" }},
		{
			name: "max_delay_below_initial",
			modify: func(cfg *Config) {
				cfg.IRC.ReconnectDelaySecs = 30
				cfg.IRC.MaxReconnectDelaySecs = 5
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manager{}
			cfg := validConfig()
			tt.modify(cfg)

			assert.Error(t, m.validate(cfg))
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	m := &Manager{}
	cfg := validConfig()

	require.NoError(t, m.validate(cfg))

	assert.Equal(t, "irc.chat.twitch.tv", cfg.IRC.Server)
	assert.Equal(t, 6667, cfg.IRC.Port)
	assert.Equal(t, "tcp", cfg.IRC.Transport)
	assert.Equal(t, 60, cfg.IRC.PingIntervalSecs)
	assert.Equal(t, 2, cfg.IRC.GreetDelaySecs)
	assert.Equal(t, 5, cfg.IRC.ReconnectDelaySecs)
	assert.Equal(t, 300, cfg.IRC.MaxReconnectDelaySecs)
}
