package app

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/bft-labs/rimed/internal/domain"
	"github.com/bft-labs/rimed/internal/ports"
	"github.com/bft-labs/rimed/pkg/log"
)

// StatusRecorder persists controller events to a StatusRepository.
type StatusRecorder struct {
	repo   ports.StatusRepository
	logger log.Logger
	now    func() time.Time

	mu     sync.Mutex
	status domain.Status
}

// NewStatusRecorder creates a recorder writing through repo.
func NewStatusRecorder(repo ports.StatusRepository, logger log.Logger) *StatusRecorder {
	return &StatusRecorder{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		status: domain.Status{
			State: domain.StateUninitialized.String(),
			PID:   os.Getpid(),
		},
	}
}

// OnStateChange records a state transition.
func (r *StatusRecorder) OnStateChange(previous, current domain.EngineState, reason string) {
	r.update(func(s *domain.Status) {
		s.Previous = previous.String()
		s.State = current.String()
		s.Reason = reason
	})
}

// OnDeployFinished records the outcome of a deploy cycle.
func (r *StatusRecorder) OnDeployFinished(degraded bool) {
	r.update(func(s *domain.Status) {
		s.Degraded = degraded
	})
}

// Status returns the last recorded status.
func (r *StatusRecorder) Status() domain.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *StatusRecorder) update(fn func(*domain.Status)) {
	r.mu.Lock()
	fn(&r.status)
	r.status.UpdatedAt = r.now().UTC()
	snapshot := r.status
	r.mu.Unlock()

	if err := r.repo.Save(context.Background(), snapshot); err != nil {
		r.logger.Error("failed to save status", log.Err(err))
	}
}
