package ports

import "github.com/bft-labs/rimed/internal/domain"

// TriggerSink accepts lifecycle triggers for serialized handling.
type TriggerSink interface {
	Post(trigger domain.Trigger)
}
