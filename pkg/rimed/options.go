package rimed

import (
	"os"

	"github.com/bft-labs/rimed/internal/ports"
	"github.com/bft-labs/rimed/pkg/log"
)

// Option configures optional behavior of a Daemon.
type Option func(*options)

type options struct {
	logger       log.Logger
	engine       ports.EngineBinding
	eventHandler EventHandler
	powerSignals []os.Signal
}

// WithLogger sets a logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEngine replaces the built-in engine binding.
func WithEngine(engine ports.EngineBinding) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithEventHandler sets a handler for daemon events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPowerOffSignals replaces the platform power-off signals.
func WithPowerOffSignals(sigs ...os.Signal) Option {
	return func(o *options) {
		o.powerSignals = sigs
	}
}
