// Package backendapi is the REST client for the asset movements backend.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/middleware"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Config configures the REST client.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the backend on behalf of one Session.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
	session *Session
}

// NewClient creates a client. With a nil session requests go out unauthenticated
// (login only).
func NewClient(cfg Config, session *Session) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL '%s'", cfg.BaseURL)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if session != nil {
		httpClient.Transport = &oauth2.Transport{Source: session, Base: http.DefaultTransport}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		session: session,
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// doJSON sends body as JSON (when non-nil) and decodes the response into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	ctx := req.Context()
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("backend_method", req.Method),
		slog.String("backend_path", req.URL.Path),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("backend call %s %s not sent: %w", req.Method, req.URL.Path, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("backend call %s %s aborted: %w", req.Method, req.URL.Path, ctxErr)
		}
		logger.Warn("Backend request failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrNetwork, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	logger.Debug("Backend call completed", slog.Int("status", resp.StatusCode), slog.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp, logger)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s %s response: %v", apperrors.ErrNetwork, req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, logger *slog.Logger) error {
	msg := readErrorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		logger.Warn("Backend rejected session credentials")
		if c.session != nil {
			c.session.Invalidate()
		}
		return fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, msg)
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.NewValidationError(msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, msg)
	default:
		logger.Warn("Backend returned error status", slog.Int("status", resp.StatusCode), slog.String("message", msg))
		return apperrors.NewNetworkError(resp.StatusCode, fmt.Sprintf("backend answered %d: %s", resp.StatusCode, msg))
	}
}

// readErrorMessage extracts "message" or "error" from a JSON error body.
func readErrorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 64<<10))
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if len(payload.Message) > 0 {
			var s string
			if json.Unmarshal(payload.Message, &s) == nil && s != "" {
				return s
			}
			var list []string
			if json.Unmarshal(payload.Message, &list) == nil && len(list) > 0 {
				return strings.Join(list, "; ")
			}
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "no details"
	}
	return text
}
