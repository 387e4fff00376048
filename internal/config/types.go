package config

// LogFormat selects the log handler.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// MessageVariant is the alert style of the site banner.
type MessageVariant string

const (
	VariantInfo    MessageVariant = "info"
	VariantWarning MessageVariant = "warning"
	VariantDanger  MessageVariant = "danger"
	VariantSuccess MessageVariant = "success"
)

// Config is the top-level catalog app configuration, corresponding to .catalog.yml.
type Config struct {
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Service ServiceConfig `yaml:"service" koanf:"service"`
	Message MessageConfig `yaml:"message" koanf:"message"`
	Graph   GraphConfig   `yaml:"graph" koanf:"graph"`
	Log     LogConfig     `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	// SessionHours is how long visitor graph preferences are remembered.
	SessionHours int `yaml:"session_hours" koanf:"session_hours"`
}

// ServiceConfig points at the catalog service.
type ServiceConfig struct {
	// ServerSideBaseURL is used by the app to fetch data.
	ServerSideBaseURL string `yaml:"server_side_base_url" koanf:"server_side_base_url"`
	// ClientSideBaseURL is the address browsers use, shown on pages.
	ClientSideBaseURL string `yaml:"client_side_base_url" koanf:"client_side_base_url"`
	TimeoutSeconds    int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	CacheSize         int    `yaml:"cache_size" koanf:"cache_size"`
	CacheTTLSeconds   int    `yaml:"cache_ttl_seconds" koanf:"cache_ttl_seconds"`
}

// MessageConfig is the optional banner shown on every page.
type MessageConfig struct {
	Markdown string         `yaml:"markdown" koanf:"markdown"`
	Variant  MessageVariant `yaml:"variant" koanf:"variant"`
}

// GraphConfig tunes the dependency graph view.
type GraphConfig struct {
	// ReclickToggles makes a click on the selected node clear the selection.
	ReclickToggles bool `yaml:"reclick_toggles" koanf:"reclick_toggles"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
	// Source is reported as the logsource field, usually the host FQN.
	Source string `yaml:"source" koanf:"source"`
}
