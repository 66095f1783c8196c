package backendapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
)

func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := c.doJSON(ctx, http.MethodGet, "/clients", nil, nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *Client) SearchClients(ctx context.Context, name string) ([]domain.Client, error) {
	var clients []domain.Client
	query := url.Values{"name": []string{name}}
	if err := c.doJSON(ctx, http.MethodGet, "/clients/search", query, nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *Client) CreateClient(ctx context.Context, input portsrepo.NewClientInput) (*domain.Client, error) {
	var client domain.Client
	if err := c.doJSON(ctx, http.MethodPost, "/clients", nil, input, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) SendClientReport(ctx context.Context, clientID string) error {
	return c.doJSON(ctx, http.MethodPost, "/clients/"+url.PathEscape(clientID)+"/report", nil, nil, nil)
}
