package session

import (
	"context"
	"fmt"
	"sync"

	"officespace/internal/clock"
	"officespace/internal/domain"
	"officespace/internal/events"
	"officespace/internal/metrics"
	"officespace/internal/models"
	"officespace/internal/policy"

	"github.com/rs/zerolog"
)

// State identifies where a booking session stands.
type State string

const (
	StateBrowsing          State = "browsing"
	StateUnavailable       State = "unavailable"
	StateSelectingDuration State = "selecting_duration"
	StateConfirming        State = "confirming"
	StateSubmitting        State = "submitting"
	StateConfirmed         State = "confirmed"
	StateFailed            State = "failed"
	StateClosed            State = "closed"
)

// Session drives one booking attempt through selection, confirmation and
// submission. It is owned by a single caller; concurrent mutation is guarded
// but not designed for.
type Session struct {
	id        string
	workspace models.Workspace
	clk       clock.Clock
	policy    policy.Policy
	gateway   domain.BookingGateway
	notifier  domain.NotificationSink
	eventBus  domain.EventPublisher
	logger    zerolog.Logger
	onChange  func(models.SessionSnapshot)

	mu       sync.Mutex
	state    State
	duration models.Duration
	notes    string
	window   models.BookingWindow
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Workspace returns the read-only snapshot of the workspace being booked.
// Later catalog changes are not reflected here.
func (s *Session) Workspace() models.Workspace { return s.workspace }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Window returns the window computed at confirmation time. Zero until the
// session reaches Confirming.
func (s *Session) Window() models.BookingWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Notes returns the free-text notes attached to the attempt.
func (s *Session) Notes() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes
}

// SelectDuration records the chosen duration and moves to SelectingDuration.
// Re-selecting replaces the prior choice.
func (s *Session) SelectDuration(d models.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateBrowsing, StateSelectingDuration:
	case StateUnavailable:
		return ErrWorkspaceUnavailable
	case StateClosed, StateConfirmed, StateFailed:
		return ErrSessionClosed
	default:
		return ErrInvalidTransition
	}

	if !d.Valid() {
		return fmt.Errorf("%w: duration %q", ErrInvalidInput, d)
	}

	s.duration = d
	s.setStateLocked(StateSelectingDuration)
	return nil
}

// SetNotes attaches free-text notes. Pure mutation, no state transition.
func (s *Session) SetNotes(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSelectingDuration:
	case StateUnavailable:
		return ErrWorkspaceUnavailable
	case StateClosed, StateConfirmed, StateFailed:
		return ErrSessionClosed
	default:
		return ErrInvalidTransition
	}

	s.notes = text
	s.notifyChangeLocked()
	return nil
}

// RequestConfirmation computes the booking window from the current instant
// and moves to Confirming. Without a selected duration it fails with
// ErrMissingSelection and the state does not change.
func (s *Session) RequestConfirmation() (models.BookingWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateBrowsing, StateSelectingDuration:
	case StateUnavailable:
		return models.BookingWindow{}, ErrWorkspaceUnavailable
	case StateClosed, StateConfirmed, StateFailed:
		return models.BookingWindow{}, ErrSessionClosed
	default:
		return models.BookingWindow{}, ErrInvalidTransition
	}

	if s.duration == "" {
		return models.BookingWindow{}, ErrMissingSelection
	}

	window, err := s.policy.ComputeWindow(s.clk.Now(), s.duration)
	if err != nil {
		return models.BookingWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	// A request "until end of day" past the boundary yields End <= Start.
	// Reject here instead of letting a negative-length booking through.
	if !window.End.After(window.Start) {
		return models.BookingWindow{}, fmt.Errorf("%w: end of day boundary already passed", ErrInvalidInput)
	}

	s.window = window
	s.setStateLocked(StateConfirming)
	return window, nil
}

// Submit sends the confirmed window to the booking gateway. While the call is
// in flight the session is busy: all other mutating calls are rejected. A
// result arriving after Close is discarded.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateConfirming:
	case StateSubmitting:
		s.mu.Unlock()
		return ErrAlreadySubmitting
	case StateUnavailable:
		s.mu.Unlock()
		return ErrWorkspaceUnavailable
	case StateClosed, StateConfirmed, StateFailed:
		s.mu.Unlock()
		return ErrSessionClosed
	default:
		s.mu.Unlock()
		return ErrInvalidTransition
	}

	s.setStateLocked(StateSubmitting)
	window := s.window
	notes := s.notes
	duration := s.duration
	s.mu.Unlock()

	reservation, reserveErr := s.gateway.Reserve(ctx, s.workspace.ID, window, notes)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSubmitting {
		// Closed while in flight; the late completion is ignored.
		s.logger.Debug().Str("session_id", s.id).Msg("discarding gateway result after close")
		return ErrSessionClosed
	}

	if reserveErr != nil {
		s.setStateLocked(StateFailed)
		metrics.IncReservation("failed")
		s.publishLocked(events.EventReservationFailed, nil)
		s.logger.Warn().Err(reserveErr).
			Str("session_id", s.id).
			Str("workspace_id", s.workspace.ID).
			Msg("reservation failed")
		s.notifier.Failure(fmt.Sprintf("Не удалось забронировать место %q: %s", s.workspace.Name, reserveErr))
		return &GatewayError{Reason: reserveErr.Error()}
	}

	s.setStateLocked(StateConfirmed)
	metrics.IncReservation("confirmed")
	s.publishLocked(events.EventReservationConfirmed, reservation)
	s.logger.Info().
		Str("session_id", s.id).
		Str("workspace_id", s.workspace.ID).
		Time("start", window.Start).
		Time("end", window.End).
		Msg("reservation confirmed")
	s.notifier.Success(fmt.Sprintf("Место %q успешно забронировано на %s!", s.workspace.Name, duration.Label()))
	return nil
}

// Retry moves a failed session back to Confirming so Submit can be called
// again with the already-computed window. Failures surface to the user; the
// session never resubmits on its own.
func (s *Session) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateFailed:
	case StateSubmitting:
		return ErrAlreadySubmitting
	case StateClosed, StateConfirmed:
		return ErrSessionClosed
	default:
		return ErrInvalidTransition
	}

	s.setStateLocked(StateConfirming)
	return nil
}

// Close terminates the session without a gateway call. Any in-flight
// submission result arriving afterwards is discarded. Every subsequent call
// fails with ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return ErrSessionClosed
	}

	s.setStateLocked(StateClosed)
	s.publishLocked(events.EventSessionClosed, nil)
	return nil
}

// Cancel is an alias for Close, matching what the UI calls it.
func (s *Session) Cancel() error { return s.Close() }

// Snapshot returns the persistable view of the session.
func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() models.SessionSnapshot {
	return models.SessionSnapshot{
		ID:          s.id,
		WorkspaceID: s.workspace.ID,
		State:       string(s.state),
		Duration:    s.duration,
		Notes:       s.notes,
		UpdatedAt:   s.clk.Now(),
	}
}

func (s *Session) setStateLocked(next State) {
	s.state = next
	s.notifyChangeLocked()
}

func (s *Session) notifyChangeLocked() {
	if s.onChange == nil {
		return
	}
	snap := s.snapshotLocked()
	// Persisting is best-effort and must not block the state machine.
	go s.onChange(snap)
}

func (s *Session) publishLocked(eventType string, reservation *models.Reservation) {
	if s.eventBus == nil {
		return
	}

	payload := events.ReservationEventPayload{
		SessionID:     s.id,
		WorkspaceID:   s.workspace.ID,
		WorkspaceName: s.workspace.Name,
		Duration:      string(s.duration),
		Start:         s.window.Start,
		End:           s.window.End,
		Notes:         s.notes,
		State:         string(s.state),
	}
	if reservation != nil {
		payload.ReservationID = reservation.ID
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("session_id", s.id).Msg("publish event error")
	}
}
