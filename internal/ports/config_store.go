package ports

import "github.com/bft-labs/rimed/internal/domain"

// Configuration is a read-only handle on a loaded engine configuration.
// Paths are slash separated, e.g. "style/color_scheme".
type Configuration interface {
	GetString(path string) (string, bool)
	GetBool(path string) (bool, bool)
	GetInt(path string) (int, bool)
	GetDouble(path string) (float64, bool)
	GetMap(path string) (map[string]interface{}, bool)
}

// ConfigStore owns one base configuration.
type ConfigStore interface {
	// OpenBase loads the configuration from the deploy location.
	// It returns false on any IO or parse failure and keeps no partial state.
	OpenBase() bool

	// Close releases the configuration. Safe to call when never opened.
	Close()

	// LoadInto hands the open configuration to the panel for one mode.
	LoadInto(panel Panel, mode domain.AppearanceMode) error
}

// ConfigStoreFactory creates a fresh store for every reload cycle.
type ConfigStoreFactory func() ConfigStore
