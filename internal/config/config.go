package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: CATALOG_SERVER__PORT -> server.port.
const EnvPrefix = "CATALOG_"

// legacyEnv maps the environment variables the app has always honoured onto
// config keys.
var legacyEnv = map[string]string{
	"SERVER_SIDE_SERVICE_BASE_URL": "service.server_side_base_url",
	"CLIENT_SIDE_SERVICE_BASE_URL": "service.client_side_base_url",
	"MESSAGE_MARKDOWN":             "message.markdown",
	"MESSAGE_VARIANT":              "message.variant",
	"FQN":                          "log.source",
	"PORT":                         "server.port",
}

// Load reads configuration from the given YAML file, then overlays the
// legacy environment variables and finally CATALOG_* overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Empty legacy variables are treated as unset.
	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return legacyEnv[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading legacy env overrides: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey turns CATALOG_SERVICE__CACHE_SIZE into service.cache_size.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validVariants = map[MessageVariant]bool{
	VariantInfo:    true,
	VariantWarning: true,
	VariantDanger:  true,
	VariantSuccess: true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.SessionHours < 0 {
		return fmt.Errorf("server.session_hours must be non-negative")
	}
	if err := validateBaseURL("service.server_side_base_url", c.Service.ServerSideBaseURL); err != nil {
		return err
	}
	if c.Service.ClientSideBaseURL != "" {
		if err := validateBaseURL("service.client_side_base_url", c.Service.ClientSideBaseURL); err != nil {
			return err
		}
	}
	if c.Service.TimeoutSeconds < 0 {
		return fmt.Errorf("service.timeout_seconds must be non-negative")
	}
	if c.Service.CacheSize < 0 || c.Service.CacheTTLSeconds < 0 {
		return fmt.Errorf("service cache settings must be non-negative")
	}
	if c.Message.Variant != "" && !validVariants[c.Message.Variant] {
		return fmt.Errorf("invalid message.variant %q: must be one of info, warning, danger, success", c.Message.Variant)
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatText {
		return fmt.Errorf("invalid log.format %q: must be json or text", c.Log.Format)
	}
	return nil
}

func validateBaseURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an http(s) url", key, raw)
	}
	return nil
}
