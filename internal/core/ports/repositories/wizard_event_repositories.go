package repositories

import (
	"context"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
)

// ListEventsQuery selects a page of a wizard's events, oldest first.
type ListEventsQuery struct {
	WizardID   string
	Limit      int
	AfterTime  *time.Time
	AfterEvent string
}

// WizardEventRepository is the audit journal of wizard actions.
type WizardEventRepository interface {
	AppendEvent(ctx context.Context, event domain.WizardEvent) error
	ListEvents(ctx context.Context, query ListEventsQuery) ([]domain.WizardEvent, error)
}
