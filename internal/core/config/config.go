// Package config handles configuration loading and validation for excerpt.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	TUI      TUIConfig      `yaml:"tui"`
	Sessions SessionsConfig `yaml:"sessions"`
	DevInfo  DevInfoConfig  `yaml:"devinfo"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// TUIConfig holds TUI behavior settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`

	// PillDelayMS is how long the cursor must rest on a segmented quote
	// before the moderator-question pill appears.
	PillDelayMS int `yaml:"pill_delay_ms"`

	// FlashTicks is how many animation ticks a tag highlight lasts.
	FlashTicks int `yaml:"flash_ticks"`
}

// SessionsConfig controls transcript session discovery.
type SessionsConfig struct {
	// Pattern is a doublestar glob matched against paths under the
	// sessions directory.
	Pattern string `yaml:"pattern"`
}

// DevInfoConfig points at the optional developer-info endpoint.
type DevInfoConfig struct {
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TUI: TUIConfig{
			Theme:       "tokyo-night",
			PillDelayMS: 150,
			FlashTicks:  8,
		},
		Sessions: SessionsConfig{
			Pattern: "**/*.session.json",
		},
	}
}

// PillDelay returns the hover debounce as a duration.
func (c *Config) PillDelay() time.Duration {
	return time.Duration(c.TUI.PillDelayMS) * time.Millisecond
}

// SessionsDir returns the path where transcript sessions are stored.
func (c *Config) SessionsDir() string {
	return filepath.Join(c.DataDir, "sessions")
}

// AnnotationsFile returns the path to the annotations JSON file.
func (c *Config) AnnotationsFile() string {
	return filepath.Join(c.DataDir, "annotations.json")
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.PillDelayMS == 0 {
		c.TUI.PillDelayMS = defaults.TUI.PillDelayMS
	}
	if c.TUI.FlashTicks == 0 {
		c.TUI.FlashTicks = defaults.TUI.FlashTicks
	}
	if c.Sessions.Pattern == "" {
		c.Sessions.Pattern = defaults.Sessions.Pattern
	}
}
