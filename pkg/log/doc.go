// Package log provides the logging abstraction used by rimed components.
//
// The Logger interface keeps the lifecycle controller and its adapters free
// of any particular logging library. A zerolog-backed implementation is used
// by the rimed binary and a no-op implementation by tests.
//
// # Usage
//
//	logger, err := log.NewZerologAdapterWithLevel(os.Stderr, "debug")
//	if err != nil {
//	    return err
//	}
//	logger.Info("engine initialized", log.String("app", "rime.squirrel"))
//
// Or discard everything:
//
//	logger := log.NewNoopLogger()
package log
