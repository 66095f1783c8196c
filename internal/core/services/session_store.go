package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ConsoleSession is one logged-in operator and the backend client bound to
// their credentials.
type ConsoleSession struct {
	ID        string
	Email     string
	API       portsrepo.BackendAPI
	ExpiresAt time.Time
}

// SessionStore keeps console sessions until they expire, are logged out, or
// the backend rejects their token.
type SessionStore struct {
	connector portsrepo.BackendConnector
	sessions  *cache.Cache

	mu      sync.RWMutex
	onClose []func(sessionID string)
}

// NewSessionStore creates an empty store.
func NewSessionStore(connector portsrepo.BackendConnector) *SessionStore {
	s := &SessionStore{
		connector: connector,
		sessions:  cache.New(cache.NoExpiration, time.Minute),
	}
	s.sessions.OnEvicted(func(sessionID string, _ interface{}) {
		s.notifyClosed(sessionID)
	})
	return s
}

// OnClose registers fn to run whenever a session ends.
func (s *SessionStore) OnClose(fn func(sessionID string)) {
	s.mu.Lock()
	s.onClose = append(s.onClose, fn)
	s.mu.Unlock()
}

// Open connects creds to the backend and stores the new session until expiresAt.
func (s *SessionStore) Open(creds domain.BackendCredentials, expiresAt time.Time) (*ConsoleSession, error) {
	id := uuid.NewString()
	api, err := s.connector.Connect(creds, func() { s.Close(id) })
	if err != nil {
		return nil, fmt.Errorf("failed to connect backend session: %w", err)
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: backend token already expired", apperrors.ErrUnauthorized)
	}
	session := &ConsoleSession{ID: id, Email: creds.Email, API: api, ExpiresAt: expiresAt}
	s.sessions.Set(id, session, ttl)
	return session, nil
}

// Get returns the live session or apperrors.ErrUnauthorized.
func (s *SessionStore) Get(sessionID string) (*ConsoleSession, error) {
	v, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: console session not found or expired", apperrors.ErrUnauthorized)
	}
	return v.(*ConsoleSession), nil
}

// SessionActive implements middleware.SessionChecker.
func (s *SessionStore) SessionActive(sessionID string) bool {
	_, ok := s.sessions.Get(sessionID)
	return ok
}

// Close ends the session. Closing an unknown session is a no-op.
func (s *SessionStore) Close(sessionID string) {
	s.sessions.Delete(sessionID)
}

func (s *SessionStore) notifyClosed(sessionID string) {
	s.mu.RLock()
	hooks := make([]func(string), len(s.onClose))
	copy(hooks, s.onClose)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn(sessionID)
	}
}
