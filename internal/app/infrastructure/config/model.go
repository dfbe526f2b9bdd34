package config

type Config struct {
	App  App  `json:"app"`
	IRC  IRC  `json:"irc"`
	HTTP HTTP `json:"http"`
}

type App struct {
	LogLevel string `json:"log_level"`
	OAuth    string `json:"oauth"`
	Username string `json:"username"`
	// Channels are normalized at load time: lowercased, "#" stripped,
	// de-duplicated with order preserved.
	Channels        []string `json:"channels"`
	AnnounceChannel string   `json:"announce_channel"`
}

type IRC struct {
	Server    string `json:"server"`
	Port      int    `json:"port"`
	Transport string `json:"transport"` // tcp, tls or ws

	ConnectTimeoutSecs int `json:"connect_timeout_secs"`
	ReadTimeoutSecs    int `json:"read_timeout_secs"`
	PingIntervalSecs   int `json:"ping_interval_secs"`
	GreetDelaySecs     int `json:"greet_delay_secs"`

	ReconnectDelaySecs    int `json:"reconnect_delay_secs"`
	MaxReconnectDelaySecs int `json:"max_reconnect_delay_secs"`
}

type HTTP struct {
	Addr      string `json:"addr"`
	AuthToken string `json:"auth_token"`
}
