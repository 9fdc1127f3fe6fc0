package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (RIMED_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("shared-data-dir", os.Getenv("RIMED_SHARED_DATA_DIR"), &cfg.SharedDataDir)
	s.setString("user-data-dir", os.Getenv("RIMED_USER_DATA_DIR"), &cfg.UserDataDir)
	s.setString("log-dir", os.Getenv("RIMED_LOG_DIR"), &cfg.LogDir)
	s.setString("state-dir", os.Getenv("RIMED_STATE_DIR"), &cfg.StateDir)
	s.setString("signal-dir", os.Getenv("RIMED_SIGNAL_DIR"), &cfg.SignalDir)
	s.setString("reload-signal", os.Getenv("RIMED_RELOAD_SIGNAL"), &cfg.ReloadSignal)
	s.setString("log-level", os.Getenv("RIMED_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("distribution-version", os.Getenv("RIMED_DISTRIBUTION_VERSION"), &cfg.DistributionVersion)

	if err := s.setDuration("debounce", os.Getenv("RIMED_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("full-check", os.Getenv("RIMED_FULL_CHECK"), &cfg.FullCheck)

	return nil
}
