package app

import "github.com/bft-labs/rimed/internal/domain"

// Config holds the fixed inputs of the lifecycle controller.
type Config struct {
	SharedDataDir string
	UserDataDir   string
	LogDir        string

	DistributionCodeName string
	DistributionName     string
	DistributionVersion  string
	AppName              string

	// ConfigFileName is deployed after successful maintenance.
	ConfigFileName string
	// ConfigVersionKey decides whether ConfigFileName needs redeploying.
	ConfigVersionKey string
}

// DefaultConfig returns the Squirrel distribution defaults.
// Directories must still be set by the caller.
func DefaultConfig() Config {
	return Config{
		DistributionCodeName: "Squirrel",
		DistributionName:     "鼠鬚管",
		DistributionVersion:  "Unknown",
		AppName:              "rime.squirrel",
		ConfigFileName:       "squirrel.yaml",
		ConfigVersionKey:     "config_version",
	}
}

// Traits builds the record handed to the engine at setup.
func (c Config) Traits() domain.Traits {
	version := c.DistributionVersion
	if version == "" {
		version = "Unknown"
	}
	return domain.Traits{
		SharedDataDir:        c.SharedDataDir,
		UserDataDir:          c.UserDataDir,
		LogDir:               c.LogDir,
		DistributionCodeName: c.DistributionCodeName,
		DistributionName:     c.DistributionName,
		DistributionVersion:  version,
		AppName:              c.AppName,
	}
}
