package ports

import (
	"context"

	"github.com/bft-labs/rimed/internal/domain"
)

// StatusRepository persists the controller status for other processes.
type StatusRepository interface {
	// Load retrieves the last saved status.
	// Returns an empty status and nil error if no status exists.
	Load(ctx context.Context) (domain.Status, error)

	// Save persists the status atomically.
	Save(ctx context.Context, status domain.Status) error
}
