package backendapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/golang-jwt/jwt/v5"
)

// Connector logs in against the backend and builds per-session clients.
type Connector struct {
	cfg      Config
	anon     *Client
	fallback time.Duration
}

// NewConnector creates a Connector. fallbackTTL is used when the backend token
// carries no readable expiry.
func NewConnector(cfg Config, fallbackTTL time.Duration) (*Connector, error) {
	anon, err := NewClient(cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Connector{cfg: cfg, anon: anon, fallback: fallbackTTL}, nil
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	AccessToken2 string `json:"access_token"`
	Token        string `json:"token"`
}

func (r loginResponse) token() string {
	switch {
	case r.AccessToken != "":
		return r.AccessToken
	case r.AccessToken2 != "":
		return r.AccessToken2
	default:
		return r.Token
	}
}

// Login calls POST /auth/login.
func (c *Connector) Login(ctx context.Context, email, password string) (*domain.BackendCredentials, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.anon.doJSON(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	token := resp.token()
	if token == "" {
		return nil, fmt.Errorf("%w: login response carried no token", apperrors.ErrUnauthorized)
	}
	return &domain.BackendCredentials{
		AccessToken: token,
		Email:       email,
		ExpiresAt:   c.expiryOf(token),
	}, nil
}

// expiryOf reads the exp claim without verifying the signature; the backend
// remains the authority on validity.
func (c *Connector) expiryOf(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(c.fallback)
}

// Connect binds a new Client to creds.
func (c *Connector) Connect(creds domain.BackendCredentials, onUnauthorized func()) (portsrepo.BackendAPI, error) {
	return NewClient(c.cfg, NewSession(creds.AccessToken, creds.ExpiresAt, onUnauthorized))
}

var (
	_ portsrepo.BackendAPI       = (*Client)(nil)
	_ portsrepo.BackendConnector = (*Connector)(nil)
)
