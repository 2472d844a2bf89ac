package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4241,
			Host: "localhost",
		},
		Provider: ProviderConfig{
			Source: SourceMock,
			Delay:  "500ms",
			Remote: RemoteConfig{
				Timeout:   "10s",
				RateLimit: 5,
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}
