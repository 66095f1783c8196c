package backendapi

import (
	"fmt"
	"sync"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"golang.org/x/oauth2"
)

// Session holds the backend bearer token of one console session. It is handed
// to NewClient explicitly and is the only place the token lives.
type Session struct {
	mu             sync.RWMutex
	accessToken    string
	expiresAt      time.Time
	invalidated    bool
	onUnauthorized func()
	once           sync.Once
}

// NewSession wraps a backend access token. onUnauthorized may be nil.
func NewSession(accessToken string, expiresAt time.Time, onUnauthorized func()) *Session {
	return &Session{accessToken: accessToken, expiresAt: expiresAt, onUnauthorized: onUnauthorized}
}

// Token implements oauth2.TokenSource.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.invalidated {
		return nil, fmt.Errorf("%w: session was invalidated", apperrors.ErrUnauthorized)
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return nil, fmt.Errorf("%w: backend token expired", apperrors.ErrUnauthorized)
	}
	return &oauth2.Token{AccessToken: s.accessToken, TokenType: "Bearer", Expiry: s.expiresAt}, nil
}

// Invalidate marks the session dead and fires the teardown hook once.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.invalidated = true
	s.mu.Unlock()
	s.once.Do(func() {
		if s.onUnauthorized != nil {
			s.onUnauthorized()
		}
	})
}

// Valid reports whether the session can still be used.
func (s *Session) Valid() bool {
	_, err := s.Token()
	return err == nil
}
