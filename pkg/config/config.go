// Package config handles loading of the user configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const defaultHost = "https://gitlab.com"

var (
	errConfigNotFound = errors.New("config file not found")
	errAPIKeyMissing  = errors.New("apikey is not set")

	// Exported errors for testing and external use.
	ErrConfigNotFound = errConfigNotFound
	ErrAPIKeyMissing  = errAPIKeyMissing
)

// Config is the process-wide configuration, loaded once per invocation and
// read-only afterwards. Group and user scoping is validated by the API
// client at fetch time, not here: a config with neither is still loadable.
type Config struct {
	Group         string   `toml:"group"`
	User          string   `toml:"user"`
	Password      string   `toml:"password"`
	APIKey        string   `toml:"apikey"`
	SSHKeyFile    string   `toml:"ssh_key_file"`
	SSHPassphrase string   `toml:"ssh_passphrase"`
	MRLabels      []string `toml:"mr_labels"`
	Host          string   `toml:"host"`
}

// Load reads and parses ~/.glpm/config.toml.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	return LoadFile(filepath.Join(homeDir, ".glpm", "config.toml"))
}

// LoadFile reads and parses the configuration file at the given path.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 - Reading config from the user's home directory is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errConfigNotFound, path)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the fields required to reach the API at all.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errAPIKeyMissing
	}
	return nil
}

// APIHost returns the configured host override or the gitlab.com default.
func (c *Config) APIHost() string {
	if c.Host != "" {
		return c.Host
	}
	return defaultHost
}

// UseBasicAuth reports whether pushes should authenticate with username and
// password instead of an SSH key.
func (c *Config) UseBasicAuth() bool {
	return c.Password != ""
}
