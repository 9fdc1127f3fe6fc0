package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/pkg/log"
)

// mockEmitter tracks state change events for testing.
type mockEmitter struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous domain.EngineState
	current  domain.EngineState
	reason   string
}

func (m *mockEmitter) OnStateChange(previous, current domain.EngineState, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *mockEmitter) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

func TestNewLifecycle(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), nil)

	if l == nil {
		t.Fatal("NewLifecycle returned nil")
	}
	if l.State() != domain.StateUninitialized {
		t.Errorf("initial state = %v, want Uninitialized", l.State())
	}
}

func TestLifecycle_TransitionTo_ValidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.EngineState
		to   domain.EngineState
	}{
		{"uninitialized to configured", domain.StateUninitialized, domain.StateConfigured},
		{"configured to running", domain.StateConfigured, domain.StateRunning},
		{"running to configured", domain.StateRunning, domain.StateConfigured},
		{"running to shutting down", domain.StateRunning, domain.StateShuttingDown},
		{"configured to shutting down", domain.StateConfigured, domain.StateShuttingDown},
		{"shutting down to terminated", domain.StateShuttingDown, domain.StateTerminated},
		{"uninitialized to terminated", domain.StateUninitialized, domain.StateTerminated},
		{"running to terminated", domain.StateRunning, domain.StateTerminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLifecycle(log.NewNoopLogger(), nil)
			l.state = tt.from

			if err := l.TransitionTo(tt.to, "test"); err != nil {
				t.Errorf("TransitionTo() error = %v", err)
			}
			if l.State() != tt.to {
				t.Errorf("state = %v after transition, want %v", l.State(), tt.to)
			}
		})
	}
}

func TestLifecycle_TransitionTo_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.EngineState
		to   domain.EngineState
	}{
		{"uninitialized to running", domain.StateUninitialized, domain.StateRunning},
		{"configured to uninitialized", domain.StateConfigured, domain.StateUninitialized},
		{"running to running", domain.StateRunning, domain.StateRunning},
		{"shutting down to configured", domain.StateShuttingDown, domain.StateConfigured},
		{"terminated to running", domain.StateTerminated, domain.StateRunning},
		{"terminated to configured", domain.StateTerminated, domain.StateConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLifecycle(log.NewNoopLogger(), nil)
			l.state = tt.from

			err := l.TransitionTo(tt.to, "test")

			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Errorf("TransitionTo() error = %v, want ErrInvalidTransition", err)
			}
			// State should not change on invalid transition
			if l.State() != tt.from {
				t.Errorf("state changed to %v on invalid transition, want %v", l.State(), tt.from)
			}
		})
	}
}

func TestLifecycle_TransitionTo_EmitsEvents(t *testing.T) {
	emitter := &mockEmitter{}
	l := NewLifecycle(log.NewNoopLogger(), emitter)

	_ = l.TransitionTo(domain.StateConfigured, "launch")
	_ = l.TransitionTo(domain.StateRunning, "deploy")
	_ = l.TransitionTo(domain.StateTerminated, "quit")
	_ = l.TransitionTo(domain.StateTerminated, "quit again")

	events := emitter.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].previous != domain.StateUninitialized || events[0].current != domain.StateConfigured {
		t.Errorf("event 0: got %v->%v, want Uninitialized->Configured", events[0].previous, events[0].current)
	}
	if events[2].reason != "quit" {
		t.Errorf("event 2 reason = %q, want quit", events[2].reason)
	}
}

func TestLifecycle_Is(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), nil)
	l.state = domain.StateRunning

	if !l.Is(domain.StateConfigured, domain.StateRunning) {
		t.Error("Is(Configured, Running) = false in Running")
	}
	if l.Is(domain.StateTerminated) {
		t.Error("Is(Terminated) = true in Running")
	}
}

func TestLifecycle_Concurrency(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = l.State()
		}()
		go func() {
			defer wg.Done()
			_ = l.TransitionTo(domain.StateTerminated, "concurrent")
		}()
	}
	wg.Wait()

	if l.State() != domain.StateTerminated {
		t.Errorf("state = %v, want Terminated", l.State())
	}
}
