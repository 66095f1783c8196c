// Package memory holds in-process repositories used when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/patrickmn/go-cache"
)

// WizardEventRepository keeps each wizard's journal in a go-cache entry that
// expires retention after the last append.
type WizardEventRepository struct {
	mu        sync.Mutex
	events    *cache.Cache
	retention time.Duration
}

// NewWizardEventRepository creates an in-memory journal.
func NewWizardEventRepository(retention time.Duration) *WizardEventRepository {
	if retention <= 0 {
		retention = time.Hour
	}
	return &WizardEventRepository{
		events:    cache.New(retention, retention),
		retention: retention,
	}
}

var _ portsrepo.WizardEventRepository = (*WizardEventRepository)(nil)

// NewRepositoryProvider wires the in-memory journal next to the backend connector.
func NewRepositoryProvider(retention time.Duration, backend portsrepo.BackendConnector) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Backend:         backend,
		WizardEventRepo: NewWizardEventRepository(retention),
	}
}

func (r *WizardEventRepository) AppendEvent(_ context.Context, event domain.WizardEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []domain.WizardEvent
	if v, ok := r.events.Get(event.WizardID); ok {
		list = v.([]domain.WizardEvent)
	}
	next := make([]domain.WizardEvent, len(list), len(list)+1)
	copy(next, list)
	next = append(next, event)
	sort.SliceStable(next, func(i, j int) bool { return eventLess(next[i], next[j]) })
	r.events.Set(event.WizardID, next, r.retention)
	return nil
}

func (r *WizardEventRepository) ListEvents(_ context.Context, q portsrepo.ListEventsQuery) ([]domain.WizardEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.events.Get(q.WizardID)
	if !ok {
		return []domain.WizardEvent{}, nil
	}
	list := v.([]domain.WizardEvent)

	out := make([]domain.WizardEvent, 0, q.Limit)
	for _, e := range list {
		if q.AfterTime != nil && !eventLess(domain.WizardEvent{ID: q.AfterEvent, OccurredAt: *q.AfterTime}, e) {
			continue
		}
		out = append(out, e)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// eventLess orders by (OccurredAt, ID), the same cursor order as the Postgres journal.
func eventLess(a, b domain.WizardEvent) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.Before(b.OccurredAt)
	}
	return a.ID < b.ID
}
