package config

// Config is the top-level YAML structure.
type Config struct {
	Version  string            `yaml:"version"`
	Engine   EngineConf        `yaml:"engine"`
	Dedrone  DedroneConf       `yaml:"dedrone"`
	Telegram TelegramConf      `yaml:"telegram"`
	Zones    map[string]string `yaml:"zones"` // zone label → chat id
}

// EngineConf holds tunable concurrency settings.
type EngineConf struct {
	AlertWorkers    int `yaml:"alert_workers"`
	ZoneParallelism int `yaml:"zone_parallelism"`
	QueueDepth      int `yaml:"queue_depth"`
	AlertTimeoutMs  int `yaml:"alert_timeout_ms"`
}

// DedroneConf configures the detection API client. The auth token is taken
// from the DEDRONE_AUTH_TOKEN environment variable, never from the file.
type DedroneConf struct {
	BaseURL    string `yaml:"base_url"`
	AuthHeader string `yaml:"auth_header"`
	AuthToken  string `yaml:"-"`
}

// TelegramConf configures the Telegram notifier. The bot token is taken from
// the BOT_TOKEN environment variable, never from the file.
type TelegramConf struct {
	APIBase string `yaml:"api_base"` // empty = public Bot API
	Token   string `yaml:"-"`
}
