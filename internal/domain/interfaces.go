package domain

import (
	"context"
	"time"

	"officespace/internal/models"
)

// Catalog is the read-only set of bookable workspaces.
type Catalog interface {
	List() []models.Workspace
	Get(id string) (models.Workspace, error)
}

// BookingGateway performs the actual reservation write. The session only
// cares about success or failure; the returned reservation is passed through
// to notifications and events.
type BookingGateway interface {
	Reserve(ctx context.Context, workspaceID string, window models.BookingWindow, notes string) (*models.Reservation, error)
}

// NotificationSink surfaces booking outcomes to the user. Fire-and-forget:
// the session never inspects the effect.
type NotificationSink interface {
	Success(message string)
	Failure(message string)
}

// EventPublisher fans out domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// SessionRepository persists session snapshots so a returning client can see
// where a booking attempt stands.
type SessionRepository interface {
	GetSession(ctx context.Context, id string) (*models.SessionSnapshot, error)
	SaveSession(ctx context.Context, snap *models.SessionSnapshot) error
	DeleteSession(ctx context.Context, id string) error
}

// ReservationStore is the system of record behind the gateway.
type ReservationStore interface {
	CreateReservation(ctx context.Context, res *models.Reservation) error
	UpdateReservationStatus(ctx context.Context, id string, status string) error
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	GetReservationsByRange(ctx context.Context, start, end time.Time) ([]*models.Reservation, error)
}

// SheetsWriter mirrors confirmed reservations into an external spreadsheet.
type SheetsWriter interface {
	AppendReservation(ctx context.Context, res *models.Reservation) error
}

// SyncWorker schedules reservation sync tasks.
type SyncWorker interface {
	EnqueueReservation(ctx context.Context, res *models.Reservation) error
}
