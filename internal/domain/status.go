package domain

import "time"

// Status is the externally visible snapshot of the controller.
type Status struct {
	State     string    `json:"state"`
	Previous  string    `json:"previous,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Degraded  bool      `json:"degraded"`
	PID       int       `json:"pid,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
