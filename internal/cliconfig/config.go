package cliconfig

import (
	"fmt"
	"time"

	"github.com/bft-labs/pathfinder/pkg/log"
)

// Config holds CLI configuration for pathfinder.
type Config struct {
	Name string

	LogLevel  string
	LogFormat string

	// MetricsAddr, when set, serves /metrics on this address.
	MetricsAddr string

	// WatchDir, when set, enables the deep-link plugin on this directory.
	WatchDir      string
	DebounceDelay time.Duration

	ShutdownTimeout time.Duration

	// DetachFirst submits every step before attaching the navigator.
	DetachFirst bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Name:            "pathfinder",
		LogLevel:        "info",
		LogFormat:       string(log.FormatConsole),
		DebounceDelay:   100 * time.Millisecond,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch log.Format(c.LogFormat) {
	case log.FormatConsole, log.FormatJSON:
	default:
		return fmt.Errorf("log format must be console or json, got %q", c.LogFormat)
	}
	if c.DebounceDelay <= 0 {
		return fmt.Errorf("debounce delay must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

// Logger builds the zerolog-backed logger described by the config.
// Validate must have succeeded.
func (c *Config) Logger() *log.ZerologAdapter {
	level, _ := log.ParseLevel(c.LogLevel)
	return log.NewZerologAdapter(level, log.Format(c.LogFormat))
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
