package session

import (
	"context"
	"time"

	"officespace/internal/clock"
	"officespace/internal/domain"
	"officespace/internal/events"
	"officespace/internal/metrics"
	"officespace/internal/models"
	"officespace/internal/policy"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const snapshotSaveTimeout = 3 * time.Second

// Manager opens booking sessions against the catalog and wires each one to
// the gateway, notifications, events and snapshot persistence.
type Manager struct {
	catalog  domain.Catalog
	clk      clock.Clock
	policy   policy.Policy
	gateway  domain.BookingGateway
	notifier domain.NotificationSink
	eventBus domain.EventPublisher
	sessions domain.SessionRepository
	logger   zerolog.Logger
}

func NewManager(
	cat domain.Catalog,
	clk clock.Clock,
	pol policy.Policy,
	gateway domain.BookingGateway,
	notifier domain.NotificationSink,
	eventBus domain.EventPublisher,
	sessions domain.SessionRepository,
	logger *zerolog.Logger,
) *Manager {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "session").Logger()
	}

	return &Manager{
		catalog:  cat,
		clk:      clk,
		policy:   pol,
		gateway:  gateway,
		notifier: notifier,
		eventBus: eventBus,
		sessions: sessions,
		logger:   base,
	}
}

// Open starts a booking session for the given workspace id. An occupied
// workspace yields a read-only session that only permits Close; an unknown id
// fails with the catalog's not-found error.
func (m *Manager) Open(ctx context.Context, workspaceID string) (*Session, error) {
	workspace, err := m.catalog.Get(workspaceID)
	if err != nil {
		return nil, err
	}

	state := StateBrowsing
	if !workspace.Available {
		state = StateUnavailable
	}

	s := &Session{
		id:        uuid.NewString(),
		workspace: workspace,
		clk:       m.clk,
		policy:    m.policy,
		gateway:   m.gateway,
		notifier:  m.notifier,
		eventBus:  m.eventBus,
		logger:    m.logger,
		state:     state,
	}
	s.onChange = m.saveSnapshot

	metrics.IncSessionOpened()
	m.logger.Info().
		Str("session_id", s.id).
		Str("workspace_id", workspace.ID).
		Str("state", string(state)).
		Msg("session opened")

	if m.eventBus != nil {
		payload := events.ReservationEventPayload{
			SessionID:     s.id,
			WorkspaceID:   workspace.ID,
			WorkspaceName: workspace.Name,
			State:         string(state),
		}
		if err := m.eventBus.PublishJSON(events.EventSessionOpened, payload); err != nil {
			m.logger.Error().Err(err).Str("session_id", s.id).Msg("publish event error")
		}
	}

	m.saveSnapshot(s.Snapshot())
	return s, nil
}

// Snapshot loads the persisted view of a session, if any.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (*models.SessionSnapshot, error) {
	if m.sessions == nil {
		return nil, nil
	}
	return m.sessions.GetSession(ctx, sessionID)
}

func (m *Manager) saveSnapshot(snap models.SessionSnapshot) {
	if m.sessions == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapshotSaveTimeout)
	defer cancel()

	if err := m.sessions.SaveSession(ctx, &snap); err != nil {
		m.logger.Error().Err(err).Str("session_id", snap.ID).Msg("save session snapshot")
	}
}
