package rimed

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultReloadSignal is the signal name that requests a redeploy.
const DefaultReloadSignal = "SquirrelReloadNotification"

// Config holds the configuration for a Daemon.
type Config struct {
	// SharedDataDir holds read-only engine data. Required.
	SharedDataDir string
	// UserDataDir holds per-user engine data and build output. Required.
	UserDataDir string
	// LogDir is handed to the engine. Default: $TMPDIR/rime.squirrel
	LogDir string
	// StateDir receives status.json. Default: UserDataDir
	StateDir string
	// SignalDir carries cross-process signals. Default: StateDir/signals
	SignalDir string

	// ReloadSignal names the redeploy signal. Default: DefaultReloadSignal
	ReloadSignal string
	// Debounce is the quiet period before a reload signal is delivered.
	// Default: 100 milliseconds
	Debounce time.Duration

	// DistributionVersion is reported to the engine. Default: "Unknown"
	DistributionVersion string
	// FullCheck runs a full maintenance pass at startup.
	FullCheck bool
}

// SetDefaults fills derived and unset fields.
func (c *Config) SetDefaults() {
	if c.LogDir == "" {
		c.LogDir = filepath.Join(os.TempDir(), "rime.squirrel")
	}
	if c.StateDir == "" {
		c.StateDir = c.UserDataDir
	}
	if c.SignalDir == "" && c.StateDir != "" {
		c.SignalDir = filepath.Join(c.StateDir, "signals")
	}
	if c.ReloadSignal == "" {
		c.ReloadSignal = DefaultReloadSignal
	}
	if c.Debounce <= 0 {
		c.Debounce = 100 * time.Millisecond
	}
	if c.DistributionVersion == "" {
		c.DistributionVersion = "Unknown"
	}
}

// Validate checks that the engine can locate its data.
func (c Config) Validate() error {
	if c.SharedDataDir == "" {
		return fmt.Errorf("%w: shared data dir is required", ErrInvalidConfig)
	}
	if c.UserDataDir == "" {
		return fmt.Errorf("%w: user data dir is required", ErrInvalidConfig)
	}
	return nil
}
