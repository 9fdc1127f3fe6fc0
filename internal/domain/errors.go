package domain

import "errors"

// Domain errors. They are logged by the controller and can be checked with errors.Is.
var (
	// ErrInvalidTransition is returned when a state change breaks the lifecycle order.
	ErrInvalidTransition = errors.New("rimed: invalid state transition")

	// ErrEngineNotSetup is returned when the engine is used before setup.
	ErrEngineNotSetup = errors.New("rimed: engine not set up")

	// ErrEngineNotInitialized is returned when the engine is used before initialize.
	ErrEngineNotInitialized = errors.New("rimed: engine not initialized")

	// ErrInvalidTraits is returned when the setup traits are incomplete.
	ErrInvalidTraits = errors.New("rimed: invalid engine traits")

	// ErrConfigNotOpen is returned when a configuration is read before it was opened.
	ErrConfigNotOpen = errors.New("rimed: configuration not open")

	// ErrNoPanel is returned when an operation needs the presentation surface before launch.
	ErrNoPanel = errors.New("rimed: presentation surface not created")

	// ErrInvalidConfig is returned when CLI configuration validation fails.
	ErrInvalidConfig = errors.New("rimed: invalid configuration")
)
