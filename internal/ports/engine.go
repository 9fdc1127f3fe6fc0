package ports

import "github.com/bft-labs/rimed/internal/domain"

// NotificationHandler receives engine notifications.
// Engines may call it from their own goroutines; it must not be invoked
// before setup completes.
type NotificationHandler func(session domain.SessionID, messageType, messageValue string)

// EngineBinding wraps the lifecycle operations of the input engine.
// All calls are synchronous and none may be made before Setup succeeds.
type EngineBinding interface {
	// SetNotificationHandler installs the single process-wide notification sink.
	SetNotificationHandler(handler NotificationHandler)

	// Setup hands the distribution traits to the engine.
	Setup(traits domain.Traits) error

	// Initialize starts the engine. Each call discards prior sessions.
	Initialize() error

	// StartMaintenance runs the engine's self-check and reports success.
	// It may block on filesystem and version-check work.
	StartMaintenance(fullCheck bool) bool

	// DeployConfigFile compiles the named config file when versionKey changed.
	DeployConfigFile(name, versionKey string) bool

	// Finalize releases the engine. Safe to call when not initialized.
	Finalize()

	// CleanupAllSessions destroys every live session.
	CleanupAllSessions()
}
