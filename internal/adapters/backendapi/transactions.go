package backendapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
)

func (c *Client) CreateTransaction(ctx context.Context, input portsrepo.CreateTransactionInput) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.doJSON(ctx, http.MethodPost, "/transactions", nil, input, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, transactionID string, input portsrepo.UpdateTransactionInput) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.doJSON(ctx, http.MethodPatch, "/transactions/"+url.PathEscape(transactionID), nil, input, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransaction fetches the transaction with client, details and child transactions.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.doJSON(ctx, http.MethodGet, "/transactions/"+url.PathEscape(transactionID), nil, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransactionLogistics returns the linked logistics record, or nil when the
// backend answers 204, null, or a record without an id.
func (c *Client) GetTransactionLogistics(ctx context.Context, transactionID string) (*domain.LogisticData, error) {
	var logistic *domain.LogisticData
	if err := c.doJSON(ctx, http.MethodGet, "/transactions/"+url.PathEscape(transactionID)+"/logistics", nil, nil, &logistic); err != nil {
		return nil, err
	}
	if logistic == nil || logistic.ID == "" {
		return nil, nil
	}
	return logistic, nil
}
