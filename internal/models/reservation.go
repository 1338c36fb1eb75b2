package models

import "time"

// BookingWindow is the computed start/end pair for one booking attempt.
// It is derived from the clock at computation time and never stored by the
// session itself.
type BookingWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Reservation is what the gateway persists once a window is submitted.
type Reservation struct {
	ID            string    `json:"id"`
	WorkspaceID   string    `json:"workspace_id"`
	WorkspaceName string    `json:"workspace_name"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Duration      Duration  `json:"duration"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"` // pending, confirmed, failed, cancelled
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SessionSnapshot is the persistable view of a booking session, enough to
// show a returning client where their attempt stands.
type SessionSnapshot struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	State       string    `json:"state"`
	Duration    Duration  `json:"duration,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
