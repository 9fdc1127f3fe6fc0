package domain

// EngineState is the process-level state of the input engine.
type EngineState int

const (
	StateUninitialized EngineState = iota
	StateConfigured
	StateRunning
	StateShuttingDown
	StateTerminated
)

// String returns a human-readable representation of the state.
func (s EngineState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateConfigured:
		return "Configured"
	case StateRunning:
		return "Running"
	case StateShuttingDown:
		return "ShuttingDown"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// CanTransitionTo reports whether the engine may move from s to next.
// Transitions only move forward, except Running -> Configured on reload and
// any state -> Terminated.
func (s EngineState) CanTransitionTo(next EngineState) bool {
	if next == StateTerminated {
		return true
	}
	switch s {
	case StateUninitialized:
		return next == StateConfigured
	case StateConfigured:
		return next == StateRunning || next == StateShuttingDown
	case StateRunning:
		return next == StateConfigured || next == StateShuttingDown
	default:
		return false
	}
}
