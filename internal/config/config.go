// Package config loads the optional YAML configuration of the plugin.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up next to the executable.
const FileName = "deck-timer.yaml"

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables of the plugin. The host launch arguments are
// not part of it; they come from the command line.
type Config struct {
	// LongPress is the hold time above which a release stops the timer.
	LongPress Duration `yaml:"long_press"`

	// RefreshInterval is the title refresh period of a running timer.
	RefreshInterval Duration `yaml:"refresh_interval"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ProtocolLog is the path of the CBOR protocol capture. Empty disables it.
	ProtocolLog string `yaml:"protocol_log"`

	// ConnectRetries bounds the attempts to reach the host socket.
	ConnectRetries int `yaml:"connect_retries"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LongPress:       Duration{1000 * time.Millisecond},
		RefreshInterval: Duration{time.Second},
		LogLevel:        "info",
		ConnectRetries:  8,
	}
}

// Validate checks the values a file may have broken.
func (c *Config) Validate() error {
	if c.LongPress.Duration <= 0 {
		return fmt.Errorf("%w: long_press must be positive", ErrInvalidConfig)
	}
	if c.RefreshInterval.Duration <= 0 {
		return fmt.Errorf("%w: refresh_interval must be positive", ErrInvalidConfig)
	}
	if c.ConnectRetries < 0 {
		return fmt.Errorf("%w: connect_retries must not be negative", ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// Duration is a time.Duration written as a Go duration string ("1s",
// "750ms") in YAML.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}
