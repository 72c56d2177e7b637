package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file.
	userConfigFile = ".todoconfig.yaml"

	// Default configuration values
	DefaultCompact = false
	DefaultColor   = ColorAuto
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents user configuration from .todoconfig.yaml.
// This file is user-managed and never written by todo.
type Config struct {
	// File is the path of the task file, relative to the config directory
	// unless absolute.
	File string `yaml:"file"`

	// Compact writes the task file on a single line.
	Compact bool `yaml:"compact"`

	// Color is one of auto, always or never.
	Color string `yaml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		File:    DefaultFile,
		Compact: DefaultCompact,
		Color:   DefaultColor,
	}
}

// LoadConfig loads .todoconfig.yaml from dir if it exists, otherwise
// returns defaults. Partial config files are merged with defaults.
func LoadConfig(dir string) (*Config, error) {
	configPath := ConfigPath(dir)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file - return defaults
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", userConfigFile, err)
	}

	return cfg, nil
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return fmt.Errorf("file must not be empty")
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of %s, %s, %s (got %q)", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	return nil
}

// TaskPath resolves the configured task file against dir.
func (c *Config) TaskPath(dir string) string {
	if filepath.IsAbs(c.File) {
		return c.File
	}
	return filepath.Join(dir, c.File)
}

// GatewayOptions returns the Gateway options implied by the config.
func (c *Config) GatewayOptions() []Option {
	var opts []Option
	if c.Compact {
		opts = append(opts, WithCompact())
	}
	return opts
}

// ConfigPath returns the path to the user config file in dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, userConfigFile)
}
