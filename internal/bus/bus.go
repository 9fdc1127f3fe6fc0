package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Kind identifies an event source.
type Kind string

// KindPowerOff is published when the system is about to power off.
const KindPowerOff Kind = "workspace.will-power-off"

// Named returns the kind of a named cross-process signal.
func Named(name string) Kind {
	return Kind("distributed." + name)
}

// Event is delivered to subscribers.
type Event struct {
	Kind Kind
}

// Handler receives published events.
type Handler func(Event)

// Token identifies one subscription.
type Token uuid.UUID

// String returns the token as a UUID string.
func (t Token) String() string {
	return uuid.UUID(t).String()
}

type subscription struct {
	token   Token
	kind    Kind
	handler Handler
}

// Bus maps event kinds to subscribers. It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	byKind map[Kind][]subscription
	kinds  map[Token]Kind
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		byKind: make(map[Kind][]subscription),
		kinds:  make(map[Token]Kind),
	}
}

// Subscribe registers handler for kind and returns the token needed to remove it.
func (b *Bus) Subscribe(kind Kind, handler Handler) Token {
	tok := Token(uuid.New())

	b.mu.Lock()
	defer b.mu.Unlock()
	b.byKind[kind] = append(b.byKind[kind], subscription{token: tok, kind: kind, handler: handler})
	b.kinds[tok] = kind
	return tok
}

// Unsubscribe removes the subscription. It reports whether anything was removed.
func (b *Bus) Unsubscribe(tok Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	kind, ok := b.kinds[tok]
	if !ok {
		return false
	}
	delete(b.kinds, tok)

	subs := b.byKind[kind]
	for i, s := range subs {
		if s.token == tok {
			subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(b.byKind, kind)
	} else {
		b.byKind[kind] = subs
	}
	return true
}

// Publish delivers an event of the given kind to every current subscriber,
// in subscription order. Handlers run on the caller's goroutine, outside the lock.
func (b *Bus) Publish(kind Kind) int {
	b.mu.RLock()
	subs := append([]subscription(nil), b.byKind[kind]...)
	b.mu.RUnlock()

	ev := Event{Kind: kind}
	for _, s := range subs {
		s.handler(ev)
	}
	return len(subs)
}

// Count returns the number of live subscriptions.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.kinds)
}
