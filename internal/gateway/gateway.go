package gateway

import (
	"context"
	"errors"
	"time"

	"officespace/internal/database"
	"officespace/internal/domain"
	"officespace/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StoreGateway writes reservations into a ReservationStore. It owns the
// timeout on the write; callers treat an expired deadline as an ordinary
// gateway failure.
type StoreGateway struct {
	store   domain.ReservationStore
	catalog domain.Catalog
	timeout time.Duration
	logger  zerolog.Logger
}

func NewStoreGateway(store domain.ReservationStore, cat domain.Catalog, timeout time.Duration, logger *zerolog.Logger) *StoreGateway {
	if timeout <= 0 {
		timeout = models.DefaultGatewayTimeout * time.Second
	}

	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "gateway").Logger()
	}

	return &StoreGateway{store: store, catalog: cat, timeout: timeout, logger: base}
}

func (g *StoreGateway) Reserve(ctx context.Context, workspaceID string, window models.BookingWindow, notes string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var workspaceName string
	if g.catalog != nil {
		if ws, err := g.catalog.Get(workspaceID); err == nil {
			workspaceName = ws.Name
		}
	}

	res := &models.Reservation{
		ID:            uuid.NewString(),
		WorkspaceID:   workspaceID,
		WorkspaceName: workspaceName,
		Start:         window.Start,
		End:           window.End,
		Duration:      durationFor(window),
		Notes:         notes,
		Status:        models.StatusConfirmed,
	}

	if err := g.store.CreateReservation(ctx, res); err != nil {
		if errors.Is(err, database.ErrWindowTaken) {
			g.logger.Warn().Str("workspace_id", workspaceID).Msg("window already taken")
		}
		return nil, err
	}

	g.logger.Info().
		Str("reservation_id", res.ID).
		Str("workspace_id", workspaceID).
		Time("start", window.Start).
		Time("end", window.End).
		Msg("reservation written")
	return res, nil
}

func durationFor(window models.BookingWindow) models.Duration {
	switch window.End.Sub(window.Start) {
	case time.Hour:
		return models.DurationOneHour
	case 2 * time.Hour:
		return models.DurationTwoHours
	default:
		return models.DurationEndOfDay
	}
}

// DelayGateway reproduces the behavior of the original client, which had no
// backend: every reservation succeeds after a fixed delay. Useful in demos
// and as a test double.
type DelayGateway struct {
	Delay time.Duration
}

func (g *DelayGateway) Reserve(ctx context.Context, workspaceID string, window models.BookingWindow, notes string) (*models.Reservation, error) {
	delay := g.Delay
	if delay <= 0 {
		delay = 1500 * time.Millisecond
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(delay):
	}

	return &models.Reservation{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Start:       window.Start,
		End:         window.End,
		Duration:    durationFor(window),
		Notes:       notes,
		Status:      models.StatusConfirmed,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}
