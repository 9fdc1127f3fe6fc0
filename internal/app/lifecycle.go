package app

import (
	"fmt"
	"sync"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/pkg/log"
)

// EventEmitter is called when the engine state changes.
type EventEmitter interface {
	OnStateChange(previous, current domain.EngineState, reason string)
}

// Lifecycle guards the engine state machine.
// The state is read from any goroutine; transitions come from the main loop.
type Lifecycle struct {
	mu           sync.RWMutex
	state        domain.EngineState
	logger       log.Logger
	eventEmitter EventEmitter
}

// NewLifecycle creates a state machine in StateUninitialized.
func NewLifecycle(logger log.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:        domain.StateUninitialized,
		logger:       logger,
		eventEmitter: emitter,
	}
}

// State returns the current engine state.
func (l *Lifecycle) State() domain.EngineState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to move to newState.
// Returns ErrInvalidTransition if the move breaks the lifecycle order.
// Re-entering Terminated is accepted silently.
func (l *Lifecycle) TransitionTo(newState domain.EngineState, reason string) error {
	l.mu.Lock()
	oldState := l.state

	if !oldState.CanTransitionTo(newState) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, oldState, newState)
	}
	if oldState == newState {
		l.mu.Unlock()
		return nil
	}

	l.state = newState
	l.mu.Unlock()

	// Emit event outside of lock
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Info("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)

	return nil
}

// Is reports whether the current state is one of states.
func (l *Lifecycle) Is(states ...domain.EngineState) bool {
	cur := l.State()
	for _, s := range states {
		if cur == s {
			return true
		}
	}
	return false
}
