package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultReloadSignal is the cross-process signal that requests a redeploy.
const DefaultReloadSignal = "SquirrelReloadNotification"

// Config holds CLI configuration for rimed.
type Config struct {
	SharedDataDir string
	UserDataDir   string
	LogDir        string
	StateDir      string
	SignalDir     string

	ReloadSignal string
	LogLevel     string
	Debounce     time.Duration

	DistributionVersion string
	FullCheck           bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ReloadSignal: DefaultReloadSignal,
		LogLevel:     "info",
		Debounce:     100 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.SharedDataDir == "" {
		return fmt.Errorf("shared-data-dir is required")
	}
	if c.UserDataDir == "" {
		return fmt.Errorf("user-data-dir is required")
	}

	if c.LogDir == "" {
		c.LogDir = filepath.Join(os.TempDir(), "rime.squirrel")
	}
	if c.StateDir == "" {
		c.StateDir = c.UserDataDir
	}
	if c.SignalDir == "" {
		c.SignalDir = filepath.Join(c.StateDir, "signals")
	}
	if c.ReloadSignal == "" {
		c.ReloadSignal = DefaultReloadSignal
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

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

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
