package ports

import (
	"context"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

// AuthResult is what the backend hands out on a successful login or
// registration.
type AuthResult struct {
	Identity domain.Identity
	Token    string
}

// AuthBackend authenticates against the REST backend. Implementations
// must return errors that wrap domain.ErrAuthFailure or domain.ErrNetwork.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, profile domain.RegisterProfile) (AuthResult, error)
}
