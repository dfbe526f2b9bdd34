package config

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
		},
		IRC: IRC{
			Server:                "irc.chat.twitch.tv",
			Port:                  6667,
			Transport:             "tcp",
			ConnectTimeoutSecs:    10,
			ReadTimeoutSecs:       1,
			PingIntervalSecs:      60,
			GreetDelaySecs:        2,
			ReconnectDelaySecs:    5,
			MaxReconnectDelaySecs: 300,
		},
		HTTP: HTTP{
			Addr: ":8080",
		},
	}
}
