package session

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkspaceUnavailable rejects booking operations on a session opened
	// for an occupied desk. Such a session only permits Close.
	ErrWorkspaceUnavailable = errors.New("workspace is not available for booking")

	// ErrInvalidInput rejects a malformed duration or a degenerate window.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingSelection rejects confirmation with no duration chosen.
	ErrMissingSelection = errors.New("no duration selected")

	// ErrAlreadySubmitting rejects a re-entrant submit.
	ErrAlreadySubmitting = errors.New("submission already in progress")

	// ErrSessionClosed rejects any call after the session terminated.
	ErrSessionClosed = errors.New("session is closed")

	// ErrInvalidTransition rejects an operation that is not defined for the
	// current state. Hitting it indicates misuse of the session API.
	ErrInvalidTransition = errors.New("operation not valid in current state")
)

// GatewayError wraps a reservation backend failure. The session stays
// retryable through Retry after one of these.
type GatewayError struct {
	Reason string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("booking gateway error: %s", e.Reason)
}
