// Package deployer is a pure Go engine binding. It implements the engine's
// lifecycle bookkeeping and its deployer: the installation record, versioned
// config file deployment with user customizations, and the session set.
package deployer

import (
	"sync"
	"time"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/internal/ports"
	"github.com/bft-labs/rimed/pkg/log"
)

// Binding implements ports.EngineBinding. It is safe for concurrent use.
type Binding struct {
	mu          sync.Mutex
	traits      domain.Traits
	isSetup     bool
	initialized bool
	handler     ports.NotificationHandler
	sessions    map[domain.SessionID]struct{}
	lastSession domain.SessionID

	logger log.Logger
	now    func() time.Time
}

// New creates a binding that has not been set up.
func New(logger log.Logger) *Binding {
	return &Binding{
		sessions: make(map[domain.SessionID]struct{}),
		logger:   logger,
		now:      time.Now,
	}
}

// SetNotificationHandler installs the notification sink.
func (b *Binding) SetNotificationHandler(handler ports.NotificationHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = handler
}

// Setup stores the traits. Later calls are ignored.
func (b *Binding) Setup(traits domain.Traits) error {
	if err := traits.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.isSetup {
		b.logger.Warn("engine already set up")
		return nil
	}
	b.traits = traits
	b.isSetup = true
	b.logger.Info("engine set up",
		log.String("app", traits.AppName),
		log.String("distribution", traits.DistributionCodeName),
		log.String("version", traits.DistributionVersion),
	)
	return nil
}

// Initialize starts the engine and discards any prior sessions.
func (b *Binding) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.isSetup {
		return domain.ErrEngineNotSetup
	}
	b.clearSessionsLocked()
	b.initialized = true
	return nil
}

// Finalize stops the engine. Safe to call when not initialized.
func (b *Binding) Finalize() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearSessionsLocked()
	b.initialized = false
}

// CleanupAllSessions destroys every live session.
func (b *Binding) CleanupAllSessions() {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.clearSessionsLocked()
	b.logger.Debug("sessions cleaned up", log.Int("count", n))
}

// Initialized reports whether the engine is initialized.
func (b *Binding) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// CreateSession opens a new session on an initialized engine.
func (b *Binding) CreateSession() (domain.SessionID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return 0, domain.ErrEngineNotInitialized
	}
	b.lastSession++
	b.sessions[b.lastSession] = struct{}{}
	return b.lastSession, nil
}

// DestroySession closes a session and reports whether it existed.
func (b *Binding) DestroySession(id domain.SessionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.sessions[id]; !ok {
		return false
	}
	delete(b.sessions, id)
	return true
}

// SessionCount returns the number of live sessions.
func (b *Binding) SessionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

func (b *Binding) clearSessionsLocked() int {
	n := len(b.sessions)
	if n > 0 {
		b.sessions = make(map[domain.SessionID]struct{})
	}
	return n
}

// ready returns the traits of an initialized engine.
func (b *Binding) ready() (domain.Traits, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.traits, b.initialized
}

// notify calls the handler outside the lock. Nothing is delivered before setup.
func (b *Binding) notify(session domain.SessionID, messageType, messageValue string) {
	b.mu.Lock()
	h := b.handler
	ok := b.isSetup
	b.mu.Unlock()

	if h != nil && ok {
		h(session, messageType, messageValue)
	}
}
