package app

import "github.com/bft-labs/rimed/internal/domain"

// Delegate receives application lifecycle callbacks on the main loop.
type Delegate interface {
	Handle(trigger domain.Trigger)
	ShouldTerminate() TerminateReply
}

// Application binds the process to its delegate.
type Application struct {
	delegate Delegate
}

// NewApplication creates an application driven by delegate.
func NewApplication(delegate Delegate) *Application {
	return &Application{delegate: delegate}
}

// Delegate returns the application delegate.
func (a *Application) Delegate() Delegate {
	return a.delegate
}

// ControllerOf returns the lifecycle controller acting as the application
// delegate. Any other delegate type is a programming error and panics.
func ControllerOf(a *Application) *Controller {
	c, ok := a.delegate.(*Controller)
	if !ok {
		panic("app: expected *Controller as application delegate")
	}
	return c
}
