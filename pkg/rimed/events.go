package rimed

import "github.com/bft-labs/rimed/internal/app"

// StateChangeEvent is emitted on every lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// DeployEvent is emitted at the end of every deploy cycle.
type DeployEvent struct {
	// Degraded is true when maintenance failed or the panel did not
	// receive a fresh configuration.
	Degraded bool
}

// EventHandler receives daemon events.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnDeployFinished(event DeployEvent)
}

// BaseEventHandler provides no-op defaults for embedding.
type BaseEventHandler struct{}

// OnStateChange ignores the state change.
func (BaseEventHandler) OnStateChange(StateChangeEvent) {}

// OnDeployFinished ignores the deploy result.
func (BaseEventHandler) OnDeployFinished(DeployEvent) {}

// eventFanout forwards controller events to the status recorder and the
// user handler, in that order.
type eventFanout struct {
	recorder *app.StatusRecorder
	handler  EventHandler
}

func (e *eventFanout) OnStateChange(previous, current State, reason string) {
	e.recorder.OnStateChange(previous, current, reason)
	if e.handler != nil {
		e.handler.OnStateChange(StateChangeEvent{Previous: previous, Current: current, Reason: reason})
	}
}

func (e *eventFanout) OnDeployFinished(degraded bool) {
	e.recorder.OnDeployFinished(degraded)
	if e.handler != nil {
		e.handler.OnDeployFinished(DeployEvent{Degraded: degraded})
	}
}
