package rimeconfig

import (
	"path/filepath"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/internal/ports"
	"github.com/bft-labs/rimed/pkg/log"
)

// BuildDir is the deploy location, relative to the user data directory.
const BuildDir = "build"

// Store implements ports.ConfigStore for one deployed configuration file.
type Store struct {
	path   string
	config *Config
	logger log.Logger
}

// NewStore creates a store for <userDataDir>/build/<fileName>.
func NewStore(userDataDir, fileName string, logger log.Logger) *Store {
	return &Store{
		path:   filepath.Join(userDataDir, BuildDir, fileName),
		logger: logger,
	}
}

// Factory returns a ports.ConfigStoreFactory creating a fresh Store per call.
func Factory(userDataDir, fileName string, logger log.Logger) ports.ConfigStoreFactory {
	return func() ports.ConfigStore {
		return NewStore(userDataDir, fileName, logger)
	}
}

// OpenBase loads the deployed configuration. On failure the store stays closed.
func (s *Store) OpenBase() bool {
	cfg, err := LoadFile(s.path)
	if err != nil {
		s.logger.Warn("open base config failed", log.String("path", s.path), log.Err(err))
		s.config = nil
		return false
	}
	s.config = cfg
	return true
}

// Close releases the configuration. Safe to call when never opened.
func (s *Store) Close() {
	s.config = nil
}

// LoadInto hands the open configuration to panel for mode.
func (s *Store) LoadInto(panel ports.Panel, mode domain.AppearanceMode) error {
	if s.config == nil {
		return domain.ErrConfigNotOpen
	}
	panel.Load(s.config, mode)
	return nil
}

// Path returns the file the store reads.
func (s *Store) Path() string {
	return s.path
}
