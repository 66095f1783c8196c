package services

import (
	"context"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
)

// ReferenceSvc serves the read-only reference data of a console session.
type ReferenceSvc interface {
	ListAssets(ctx context.Context, sessionID string) ([]domain.Asset, error)
	ListTransactionRules(ctx context.Context, sessionID string) ([]domain.TransactionRule, error)
	ListLogisticSettings(ctx context.Context, sessionID string) ([]domain.LogisticSettings, error)
}
