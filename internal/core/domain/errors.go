package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthFailure covers rejected credentials and refused registrations.
	ErrAuthFailure = errors.New("authentication failed")

	// ErrNetwork covers an unreachable backend or a failure response without
	// a structured message.
	ErrNetwork = errors.New("backend unavailable")

	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("access forbidden")
	ErrValidation = errors.New("invalid input")

	// ErrTaskLocked is returned for status changes on a completed task.
	ErrTaskLocked = fmt.Errorf("%w: task already completed", ErrForbidden)

	ErrNoSession      = errors.New("no active session")
	ErrInvalidSession = errors.New("invalid session")
	ErrStorage        = errors.New("session storage failure")
)

// Messenger is implemented by errors that carry text meant for the user.
type Messenger interface {
	UserMessage() string
}

// UserMessage returns the first user-facing message found in err's chain,
// or fallback when there is none.
func UserMessage(err error, fallback string) string {
	var m Messenger
	if errors.As(err, &m) {
		if msg := m.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
