package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/vire-dashboard/internal/common"
)

// Provider sources.
const (
	SourceMock   = "mock"
	SourceRemote = "remote"
)

// Config represents the application configuration.
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Provider    ProviderConfig `toml:"provider"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// ProviderConfig selects and tunes the portfolio data provider.
type ProviderConfig struct {
	Source   string       `toml:"source"`   // "mock" or "remote"
	Delay    string       `toml:"delay"`    // simulated latency of the mock, e.g. "500ms"
	Fixtures string       `toml:"fixtures"` // optional TOML fixture file for the mock
	Remote   RemoteConfig `toml:"remote"`
}

// RemoteConfig contains settings for the HTTP-backed provider.
type RemoteConfig struct {
	URL       string `toml:"url"`
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// GetDelay parses the mock delay, falling back to 500ms.
func (c *ProviderConfig) GetDelay() time.Duration {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// GetTimeout parses the remote timeout, falling back to 10s.
func (c *RemoteConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// IsDevMode reports whether the environment is "dev".
func (c *Config) IsDevMode() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "dev")
}

// LoggerConfig converts the logging section for common.NewLoggerFromConfig.
func (c *Config) LoggerConfig() common.LoggingConfig {
	return common.LoggingConfig{
		Level:      c.Logging.Level,
		Outputs:    c.Logging.Outputs,
		FilePath:   c.Logging.FilePath,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
	}
}

// Validate returns a list of configuration problems. Empty means valid.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}

	switch c.Provider.Source {
	case SourceMock:
		if c.Provider.Delay != "" {
			if d, err := time.ParseDuration(c.Provider.Delay); err != nil {
				issues = append(issues, fmt.Sprintf("provider.delay is not a duration: %q", c.Provider.Delay))
			} else if d < 0 {
				issues = append(issues, fmt.Sprintf("provider.delay must not be negative (got %s)", d))
			}
		}
	case SourceRemote:
		if strings.TrimSpace(c.Provider.Remote.URL) == "" {
			issues = append(issues, "provider.remote.url is required when provider.source = \"remote\" (or set VIRE_PROVIDER_URL)")
		}
		if c.Provider.Remote.Timeout != "" {
			if _, err := time.ParseDuration(c.Provider.Remote.Timeout); err != nil {
				issues = append(issues, fmt.Sprintf("provider.remote.timeout is not a duration: %q", c.Provider.Remote.Timeout))
			}
		}
	default:
		issues = append(issues, fmt.Sprintf("provider.source must be %q or %q (got %q)", SourceMock, SourceRemote, c.Provider.Source))
	}

	return issues
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies VIRE_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VIRE_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("VIRE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("VIRE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if source := os.Getenv("VIRE_PROVIDER_SOURCE"); source != "" {
		config.Provider.Source = source
	}
	if delay := os.Getenv("VIRE_PROVIDER_DELAY"); delay != "" {
		config.Provider.Delay = delay
	}
	if fixtures := os.Getenv("VIRE_PROVIDER_FIXTURES"); fixtures != "" {
		config.Provider.Fixtures = fixtures
	}
	if url := os.Getenv("VIRE_PROVIDER_URL"); url != "" {
		config.Provider.Remote.URL = url
	}
	if level := os.Getenv("VIRE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if outputs := os.Getenv("VIRE_LOG_OUTPUTS"); outputs != "" {
		var list []string
		for _, o := range strings.Split(outputs, ",") {
			if o = strings.TrimSpace(o); o != "" {
				list = append(list, o)
			}
		}
		config.Logging.Outputs = list
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
