package config

// DefaultServiceBaseURL is where the catalog service runs locally.
const DefaultServiceBaseURL = "http://localhost:8090"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         3000,
			SessionHours: 24,
		},
		Service: ServiceConfig{
			ServerSideBaseURL: DefaultServiceBaseURL,
			ClientSideBaseURL: DefaultServiceBaseURL,
			TimeoutSeconds:    10,
			CacheSize:         64,
			CacheTTLSeconds:   30,
		},
		Message: MessageConfig{
			Variant: VariantInfo,
		},
		Graph: GraphConfig{
			ReclickToggles: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatJSON,
		},
	}
}
