package app

import (
	"sync"

	"github.com/bft-labs/rimed/internal/bus"
	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/internal/ports"
	"github.com/bft-labs/rimed/pkg/log"
)

// DefaultReloadSignal is the name of the cross-process reload signal.
const DefaultReloadSignal = "SquirrelReloadNotification"

// Router turns bus events into lifecycle triggers.
// It owns exactly two subscriptions: power-off and the named reload signal.
type Router struct {
	bus          *bus.Bus
	sink         ports.TriggerSink
	reloadSignal string
	logger       log.Logger

	mu     sync.Mutex
	tokens []bus.Token
}

// NewRouter creates a router that posts triggers to sink.
func NewRouter(b *bus.Bus, sink ports.TriggerSink, reloadSignal string, logger log.Logger) *Router {
	if reloadSignal == "" {
		reloadSignal = DefaultReloadSignal
	}
	return &Router{
		bus:          b,
		sink:         sink,
		reloadSignal: reloadSignal,
		logger:       logger,
	}
}

// Install subscribes to power-off and reload events. Installing twice keeps
// the first set.
func (r *Router) Install() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.tokens) > 0 {
		return
	}
	r.tokens = append(r.tokens,
		r.bus.Subscribe(bus.KindPowerOff, r.forward(domain.PowerOff())),
		r.bus.Subscribe(bus.Named(r.reloadSignal), r.forward(domain.ReloadRequested())),
	)
	r.logger.Debug("subscriptions installed", log.String("reload_signal", r.reloadSignal))
}

// Remove drops every subscription installed by this router.
// It is safe to call at any time, including before Install.
func (r *Router) Remove() {
	r.mu.Lock()
	tokens := r.tokens
	r.tokens = nil
	r.mu.Unlock()

	for _, tok := range tokens {
		r.bus.Unsubscribe(tok)
	}
	if len(tokens) > 0 {
		r.logger.Debug("subscriptions removed", log.Int("count", len(tokens)))
	}
}

// Installed returns the number of live subscriptions owned by the router.
func (r *Router) Installed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

func (r *Router) forward(trigger domain.Trigger) bus.Handler {
	return func(ev bus.Event) {
		r.logger.Debug("forwarding event", log.String("kind", string(ev.Kind)), log.String("trigger", trigger.String()))
		r.sink.Post(trigger)
	}
}
