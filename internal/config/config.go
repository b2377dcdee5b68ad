// Package config loads and persists the global crmdash configuration
// stored at ~/.crmdash/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/crmvibe/crmdash/internal/errors"
)

// EnvAPIBase overrides the configured API base URL when set.
const EnvAPIBase = "CRMDASH_API_BASE"

// DefaultAPIBase is the API base URL used when nothing is configured.
const DefaultAPIBase = "http://localhost:8000/api"

// Config represents the global crmdash configuration
type Config struct {
	API     APIConfig     `yaml:"api,omitempty"`
	Access  AccessConfig  `yaml:"access,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// APIConfig configures the CRM backend endpoint
type APIConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// AccessConfig mirrors the backend's per-view authorization rules so the
// client can redirect up front instead of round-tripping into a 403.
type AccessConfig struct {
	// CustomersEmail, when set, restricts the customer views to the
	// session with exactly this email. Empty means any authenticated
	// session may view customers.
	CustomersEmail string `yaml:"customers_email,omitempty"`
}

// LoggingConfig configures log output
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format,omitempty"` // "text", "json"
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIBase,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Dir returns the crmdash configuration directory, creating it if needed.
// This directory also holds the saved session credentials.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".crmdash")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// Path returns the path to the global configuration file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads the global configuration, falling back to defaults if the
// file doesn't exist. A malformed file is an error; it is never silently
// replaced.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads a configuration from an explicit path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeConfigNotFound, "failed to read config", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigInvalidError(path, err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIBase
	}

	return cfg, nil
}

// Save writes the configuration to the given path
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigWriteFail, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigWriteFail, "failed to write config", err)
	}

	return nil
}

// APIBase resolves the effective API base URL: the environment override
// wins over the configured value.
func (c *Config) APIBase() string {
	if env := os.Getenv(EnvAPIBase); env != "" {
		return env
	}
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return DefaultAPIBase
}
