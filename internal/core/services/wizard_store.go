package services

import (
	"sync"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/patrickmn/go-cache"
)

// wizardStore indexes open wizards by id and by owning console session.
// Idle wizards expire after ttl; expiry discards them like an explicit DELETE.
type wizardStore struct {
	ttl     time.Duration
	wizards *cache.Cache

	mu        sync.Mutex
	bySession map[string]map[string]struct{}
}

func newWizardStore(ttl time.Duration) *wizardStore {
	cleanup := ttl / 2
	if cleanup <= 0 || cleanup > time.Minute {
		cleanup = time.Minute
	}
	s := &wizardStore{
		ttl:       ttl,
		wizards:   cache.New(ttl, cleanup),
		bySession: make(map[string]map[string]struct{}),
	}
	s.wizards.OnEvicted(func(_ string, v interface{}) {
		w := v.(*wizardSession)
		w.discard()
		s.unindex(w)
	})
	return s
}

func (s *wizardStore) add(w *wizardSession) {
	s.mu.Lock()
	ids, ok := s.bySession[w.sessionID]
	if !ok {
		ids = make(map[string]struct{})
		s.bySession[w.sessionID] = ids
	}
	ids[w.id] = struct{}{}
	s.mu.Unlock()
	s.wizards.Set(w.id, w, s.ttl)
}

// get returns the wizard if it belongs to sessionID and refreshes its idle timer.
func (s *wizardStore) get(sessionID, wizardID string) (*wizardSession, error) {
	v, ok := s.wizards.Get(wizardID)
	if !ok {
		return nil, apperrors.NewNotFoundError("wizard " + wizardID)
	}
	w := v.(*wizardSession)
	if w.sessionID != sessionID {
		return nil, apperrors.NewNotFoundError("wizard " + wizardID)
	}
	if w.closed() {
		return nil, apperrors.ErrWizardClosed
	}
	if !s.touch(w) {
		return nil, apperrors.ErrWizardClosed
	}
	return w, nil
}

// touch refreshes the idle timer of a wizard still in the store. It never
// re-inserts one that was removed meanwhile.
func (s *wizardStore) touch(w *wizardSession) bool {
	return s.wizards.Replace(w.id, w, s.ttl) == nil
}

func (s *wizardStore) remove(wizardID string) {
	s.wizards.Delete(wizardID)
}

// discardSession drops every wizard owned by sessionID.
func (s *wizardStore) discardSession(sessionID string) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.bySession[sessionID]))
	for id := range s.bySession[sessionID] {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.wizards.Delete(id)
	}
}

func (s *wizardStore) unindex(w *wizardSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.bySession[w.sessionID]
	delete(ids, w.id)
	if len(ids) == 0 {
		delete(s.bySession, w.sessionID)
	}
}
