package backendapi

import (
	"context"
	"net/http"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
)

// ListAssets calls GET /assets.
func (c *Client) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := c.doJSON(ctx, http.MethodGet, "/assets", nil, nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// ListTransactionRules calls GET /transaction-rules.
func (c *Client) ListTransactionRules(ctx context.Context) ([]domain.TransactionRule, error) {
	var rules []domain.TransactionRule
	if err := c.doJSON(ctx, http.MethodGet, "/transaction-rules", nil, nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}
