package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// referenceData is the asset list and rule graph shared by one wizard.
type referenceData struct {
	Assets []domain.Asset
	Rules  []domain.TransactionRule
	Graph  *domain.RuleGraph
}

// ReferenceService loads assets, transaction rules and logistic settings and
// caches them per console session for a short TTL.
type ReferenceService struct {
	BaseService
	sessions *SessionStore
	cache    *cache.Cache
}

// NewReferenceService creates the service. Cached entries of a session are
// dropped when the session closes.
func NewReferenceService(sessions *SessionStore, ttl time.Duration) *ReferenceService {
	s := &ReferenceService{
		sessions: sessions,
		cache:    cache.New(ttl, 2*ttl+time.Second),
	}
	sessions.OnClose(s.forget)
	return s
}

func referenceKey(sessionID string) string { return sessionID + ":reference" }
func settingsKey(sessionID string) string  { return sessionID + ":settings" }

func (s *ReferenceService) forget(sessionID string) {
	s.cache.Delete(referenceKey(sessionID))
	s.cache.Delete(settingsKey(sessionID))
}

// load fetches assets and rules concurrently. Either failing fails the whole
// load, so callers never see partial reference data.
func (s *ReferenceService) load(ctx context.Context, sessionID string, api portsrepo.AssetReader) (*referenceData, error) {
	if v, ok := s.cache.Get(referenceKey(sessionID)); ok {
		return v.(*referenceData), nil
	}

	var (
		assets []domain.Asset
		rules  []domain.TransactionRule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = api.ListAssets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = api.ListTransactionRules(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load reference data", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrReferenceUnavailable, err)
	}

	data := &referenceData{Assets: assets, Rules: rules, Graph: domain.NewRuleGraph(assets, rules)}
	s.cache.SetDefault(referenceKey(sessionID), data)
	s.LogDebug(ctx, "Reference data loaded", slog.Int("assets", len(assets)), slog.Int("rules", len(rules)))
	return data, nil
}

func (s *ReferenceService) settings(ctx context.Context, sessionID string, api portsrepo.LogisticsRepository) ([]domain.LogisticSettings, error) {
	if v, ok := s.cache.Get(settingsKey(sessionID)); ok {
		return v.([]domain.LogisticSettings), nil
	}
	settings, err := api.ListLogisticSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load logistic settings", slog.String("session_id", sessionID))
		return nil, err
	}
	s.cache.SetDefault(settingsKey(sessionID), settings)
	return settings, nil
}

func (s *ReferenceService) ListAssets(ctx context.Context, sessionID string) ([]domain.Asset, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	data, err := s.load(ctx, sessionID, session.API)
	if err != nil {
		return nil, err
	}
	return data.Graph.Assets(), nil
}

func (s *ReferenceService) ListTransactionRules(ctx context.Context, sessionID string) ([]domain.TransactionRule, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	data, err := s.load(ctx, sessionID, session.API)
	if err != nil {
		return nil, err
	}
	rules := make([]domain.TransactionRule, len(data.Rules))
	copy(rules, data.Rules)
	return rules, nil
}

func (s *ReferenceService) ListLogisticSettings(ctx context.Context, sessionID string) ([]domain.LogisticSettings, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings(ctx, sessionID, session.API)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LogisticSettings, len(settings))
	copy(out, settings)
	return out, nil
}
