package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	SharedDataDir       string `toml:"shared_data_dir"`
	UserDataDir         string `toml:"user_data_dir"`
	LogDir              string `toml:"log_dir"`
	StateDir            string `toml:"state_dir"`
	SignalDir           string `toml:"signal_dir"`
	ReloadSignal        string `toml:"reload_signal"`
	LogLevel            string `toml:"log_level"`
	Debounce            string `toml:"debounce"`
	DistributionVersion string `toml:"distribution_version"`
	FullCheck           *bool  `toml:"full_check"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.rimed/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".rimed", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("shared-data-dir", fc.SharedDataDir, &cfg.SharedDataDir)
	s.setString("user-data-dir", fc.UserDataDir, &cfg.UserDataDir)
	s.setString("log-dir", fc.LogDir, &cfg.LogDir)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("signal-dir", fc.SignalDir, &cfg.SignalDir)
	s.setString("reload-signal", fc.ReloadSignal, &cfg.ReloadSignal)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("distribution-version", fc.DistributionVersion, &cfg.DistributionVersion)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("full-check", fc.FullCheck, &cfg.FullCheck)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
