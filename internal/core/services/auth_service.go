package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils"
)

// AuthConfig holds the console token settings.
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
	JWTExpiry time.Duration
}

// AuthService logs operators in against the backend and issues console tokens.
type AuthService struct {
	BaseService
	cfg       AuthConfig
	connector portsrepo.BackendConnector
	sessions  *SessionStore
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(cfg AuthConfig, connector portsrepo.BackendConnector, sessions *SessionStore) *AuthService {
	return &AuthService{cfg: cfg, connector: connector, sessions: sessions, now: time.Now}
}

// Login forwards the credentials to the backend. The console token expires
// no later than the backend token it stands for.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	creds, err := s.connector.Login(ctx, email, req.Password)
	if err != nil {
		s.LogWarn(ctx, err, "Backend login failed", slog.String("email", email))
		return nil, err
	}

	expiresAt := s.now().Add(s.cfg.JWTExpiry)
	if !creds.ExpiresAt.IsZero() && creds.ExpiresAt.Before(expiresAt) {
		expiresAt = creds.ExpiresAt
	}

	session, err := s.sessions.Open(*creds, expiresAt)
	if err != nil {
		s.LogError(ctx, err, "Failed to open console session", slog.String("email", email))
		return nil, err
	}

	token, err := utils.GenerateJWT(session.ID, s.cfg.JWTSecret, expiresAt, s.cfg.JWTIssuer)
	if err != nil {
		s.sessions.Close(session.ID)
		return nil, apperrors.NewAppError(500, "failed to sign console token", err)
	}

	s.LogInfo(ctx, "Console session opened",
		slog.String("session_id", session.ID),
		slog.String("email", email),
		slog.Time("expires_at", expiresAt))
	return &dto.LoginResponse{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// Logout closes the session and every wizard it owns.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: no console session", apperrors.ErrUnauthorized)
	}
	s.sessions.Close(sessionID)
	s.LogInfo(ctx, "Console session closed", slog.String("session_id", sessionID))
	return nil
}

func (s *AuthService) SessionActive(sessionID string) bool {
	return s.sessions.SessionActive(sessionID)
}
