package app

import (
	"os"

	"github.com/bft-labs/rimed/pkg/log"
)

// ensureDir creates path and its parents when missing.
// Failures are logged and reported but never stop the launch sequence.
func ensureDir(path, what string, logger log.Logger) bool {
	if path == "" {
		return false
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		logger.Error("error creating directory",
			log.String("dir", what),
			log.String("path", path),
			log.Err(err),
		)
		return false
	}
	logger.Debug("created directory", log.String("dir", what), log.String("path", path))
	return true
}

// setupEngine prepares directories, installs the notification sink and hands
// the traits to the engine. Only engine setup errors are returned.
func (c *Controller) setupEngine() error {
	ensureDir(c.cfg.UserDataDir, "user data", c.logger)
	ensureDir(c.cfg.LogDir, "log", c.logger)

	c.engine.SetNotificationHandler(c.onNotification)
	return c.engine.Setup(c.cfg.Traits())
}
