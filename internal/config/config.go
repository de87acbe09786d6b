// Package config loads the skyctl client configuration.
//
// Configuration is resolved in order of increasing precedence: built-in
// defaults, the user config file (~/.config/skyctl/config.yaml), then
// SKYLIFT_* environment variables. CLI flags override all of these at the
// command layer.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvEndpoint  = "SKYLIFT_ENDPOINT"
	EnvAccessKey = "SKYLIFT_ACCESS_KEY"
	EnvSecretKey = "SKYLIFT_SECRET_KEY"
)

// DefaultRequestTimeout bounds non-streaming API requests.
const DefaultRequestTimeout = 30 * time.Second

// ErrNoEndpoint is returned by Validate when no manager endpoint is configured.
var ErrNoEndpoint = errors.New("no manager endpoint configured (set endpoint in config file or SKYLIFT_ENDPOINT)")

// Config holds the connection settings for the Skylift manager API.
type Config struct {
	// Endpoint is the base URL of the manager API, e.g. https://manager.example.com.
	Endpoint string `yaml:"endpoint"`

	// AccessKey identifies the requesting keypair.
	AccessKey string `yaml:"access_key"`

	// SecretKey signs API requests. Never logged.
	SecretKey string `yaml:"secret_key"`

	// RequestTimeout bounds non-streaming requests. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Load reads the YAML config at path (if it exists) and applies environment
// overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{RequestTimeout: DefaultRequestTimeout}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, unmarshalErr)
			}
		case os.IsNotExist(err):
			// No config file is fine; env vars or flags may supply everything.
		default:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvAccessKey); v != "" {
		cfg.AccessKey = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		cfg.SecretKey = v
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return cfg, nil
}

// DefaultPath returns the default config file location. It respects
// XDG_CONFIG_HOME and falls back to ~/.config.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "skyctl", "config.yaml")
}

// Validate checks that the configuration is sufficient to reach the manager.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	return nil
}
