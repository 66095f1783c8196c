package backendapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
)

func (c *Client) ListLogisticSettings(ctx context.Context) ([]domain.LogisticSettings, error) {
	var settings []domain.LogisticSettings
	if err := c.doJSON(ctx, http.MethodGet, "/logistics/settings", nil, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *Client) CalculatePrice(ctx context.Context, req portsrepo.PriceRequest) (*domain.PriceQuote, error) {
	var quote domain.PriceQuote
	if err := c.doJSON(ctx, http.MethodPost, "/logistics/calculate", nil, req, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) LinkLogistics(ctx context.Context, input portsrepo.LinkLogisticsInput) (*domain.LogisticData, error) {
	var logistic domain.LogisticData
	if err := c.doJSON(ctx, http.MethodPost, "/logistics", nil, input, &logistic); err != nil {
		return nil, err
	}
	return &logistic, nil
}

func (c *Client) UpdateLogisticsStatus(ctx context.Context, logisticsID string, status domain.LogisticStatus) (*domain.LogisticData, error) {
	var logistic domain.LogisticData
	body := map[string]domain.LogisticStatus{"status": status}
	if err := c.doJSON(ctx, http.MethodPatch, "/logistics/"+url.PathEscape(logisticsID)+"/status", nil, body, &logistic); err != nil {
		return nil, err
	}
	return &logistic, nil
}
