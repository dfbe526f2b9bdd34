package config

import (
	"errors"
	"fmt"
	"strings"
)

func (m *Manager) validate(cfg *Config) error {
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error; got %s", cfg.App.LogLevel)
	}

	if cfg.App.OAuth == "" {
		return errors.New("app.oauth is required")
	}
	if cfg.App.Username == "" {
		return errors.New("app.username is required")
	}
	cfg.App.Username = strings.ToLower(cfg.App.Username)

	if len(cfg.App.Channels) == 0 {
		return errors.New("app.channels is required")
	}
	cfg.App.Channels = normalizeChannels(cfg.App.Channels)
	if len(cfg.App.Channels) == 0 {
		return errors.New("app.channels contains no usable channel names")
	}

	if cfg.App.AnnounceChannel != "" {
		cfg.App.AnnounceChannel = normalizeChannel(cfg.App.AnnounceChannel)

		found := false
		for _, ch := range cfg.App.Channels {
			if ch == cfg.App.AnnounceChannel {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("app.announce_channel %q is not in app.channels", cfg.App.AnnounceChannel)
		}
	}

	if cfg.IRC.Server == "" {
		cfg.IRC.Server = "irc.chat.twitch.tv"
	}
	if cfg.IRC.Port == 0 {
		cfg.IRC.Port = 6667
	}

	switch cfg.IRC.Transport {
	case "":
		cfg.IRC.Transport = "tcp"
	case "tcp", "tls", "ws":
	default:
		return fmt.Errorf("irc.transport must be one of tcp, tls, ws; got %s", cfg.IRC.Transport)
	}

	if cfg.IRC.ConnectTimeoutSecs <= 0 {
		cfg.IRC.ConnectTimeoutSecs = 10
	}
	if cfg.IRC.ReadTimeoutSecs <= 0 {
		cfg.IRC.ReadTimeoutSecs = 1
	}
	if cfg.IRC.PingIntervalSecs <= 0 {
		cfg.IRC.PingIntervalSecs = 60
	}
	if cfg.IRC.GreetDelaySecs < 0 {
		return errors.New("irc.greet_delay_secs must not be negative")
	}
	if cfg.IRC.GreetDelaySecs == 0 {
		cfg.IRC.GreetDelaySecs = 2
	}

	if cfg.IRC.ReconnectDelaySecs <= 0 {
		cfg.IRC.ReconnectDelaySecs = 5
	}
	if cfg.IRC.MaxReconnectDelaySecs == 0 {
		cfg.IRC.MaxReconnectDelaySecs = 300
	}
	if cfg.IRC.MaxReconnectDelaySecs < cfg.IRC.ReconnectDelaySecs {
		return fmt.Errorf("irc.max_reconnect_delay_secs (%d) must be >= irc.reconnect_delay_secs (%d)",
			cfg.IRC.MaxReconnectDelaySecs, cfg.IRC.ReconnectDelaySecs)
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	return nil
}

// normalizeChannel lowercases a room name and strips a leading "#"; room
// names are always compared case-insensitively and without the marker.
func normalizeChannel(channel string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(channel), "#"))
}

func normalizeChannels(channels []string) []string {
	seen := make(map[string]struct{}, len(channels))
	out := make([]string, 0, len(channels))

	for _, ch := range channels {
		norm := normalizeChannel(ch)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}
