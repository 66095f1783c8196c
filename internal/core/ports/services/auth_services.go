package services

import (
	"context"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
)

// AuthSvcFacade opens and tears down console sessions.
type AuthSvcFacade interface {
	// Login authenticates against the backend and returns a console token.
	// The backend token stays on the server.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Logout ends the session and discards all of its wizards.
	Logout(ctx context.Context, sessionID string) error

	// SessionActive reports whether the session is still open.
	SessionActive(sessionID string) bool
}
