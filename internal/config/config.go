// Package config loads client configuration from defaults, an optional
// YAML file, and the environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything the CLI and web front end need to reach the
// API and keep credentials between runs.
type Config struct {
	// BaseURL is the API root, including the version prefix.
	BaseURL string `yaml:"base_url" env:"SERVIFY_API_URL"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout" env:"SERVIFY_TIMEOUT"`
	// CredentialsPath is the file-backed credential store location.
	CredentialsPath string `yaml:"credentials_path" env:"SERVIFY_CREDENTIALS"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"SERVIFY_LOG_LEVEL"`
	// LogJSON switches log output to JSON lines.
	LogJSON bool `yaml:"log_json" env:"SERVIFY_LOG_JSON"`
	// RequestsPerSecond throttles outbound API calls when > 0.
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"SERVIFY_RPS"`
	// Burst caps the throttle burst.
	Burst int `yaml:"burst" env:"SERVIFY_BURST"`
	// ListenAddr is the bind address of the local web front end.
	ListenAddr string `yaml:"listen_addr" env:"SERVIFY_LISTEN_ADDR"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		BaseURL:         "http://localhost:3000/api",
		Timeout:         30 * time.Second,
		CredentialsPath: filepath.Join(home, ".servify", "credentials.json"),
		LogLevel:        "info",
		ListenAddr:      "127.0.0.1:8080",
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// at path (skipped when path is empty or the file does not exist), then
// environment variables. A .env file in the working directory is folded
// into the environment first.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	// Fields without a matching variable keep their current value.
	if err := envdecode.Decode(cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
