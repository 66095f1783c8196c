package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/pagination"
	"github.com/google/uuid"
)

const defaultEventsPageSize = 20

// WizardConfig tunes wizard sessions.
type WizardConfig struct {
	SessionTTL         time.Duration
	SearchDebounce     time.Duration
	MaxUploadFiles     int
	MaxUploadFileBytes int64
}

// WizardService runs the transaction wizards of all console sessions.
type WizardService struct {
	BaseService
	cfg       WizardConfig
	sessions  *SessionStore
	wizards   *wizardStore
	reference *ReferenceService
	journal   portsrepo.WizardEventRepository
	analytics *utils.PosthogClientWrapper
	now       func() time.Time
}

// WizardOption configures a WizardService.
type WizardOption func(*WizardService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) WizardOption {
	return func(s *WizardService) { s.now = now }
}

// WithAnalytics sends step completion events to PostHog.
func WithAnalytics(client *utils.PosthogClientWrapper) WizardOption {
	return func(s *WizardService) { s.analytics = client }
}

// NewWizardService creates the service. Wizards of a console session are
// discarded when the session closes.
func NewWizardService(cfg WizardConfig, sessions *SessionStore, reference *ReferenceService, journal portsrepo.WizardEventRepository, opts ...WizardOption) *WizardService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.MaxUploadFiles <= 0 {
		cfg.MaxUploadFiles = 5
	}
	s := &WizardService{
		cfg:       cfg,
		sessions:  sessions,
		wizards:   newWizardStore(cfg.SessionTTL),
		reference: reference,
		journal:   journal,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	sessions.OnClose(s.wizards.discardSession)
	return s
}

func (s *WizardService) wizard(sessionID, wizardID string) (*wizardSession, error) {
	return s.wizards.get(sessionID, wizardID)
}

// StartWizard opens a wizard. Resuming a transaction lands on the logistics
// step when logistics are linked, otherwise on the operation step with the
// client and transaction id filled in.
func (s *WizardService) StartWizard(ctx context.Context, sessionID string, req dto.StartWizardRequest) (*dto.WizardView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	w := newWizardSession(uuid.NewString(), session, s.cfg.SearchDebounce, s.now())

	if req.TransactionID != "" {
		if err := s.resume(ctx, w, req.TransactionID); err != nil {
			w.discard()
			return nil, err
		}
	}

	s.wizards.add(w)
	s.LogInfo(ctx, "Wizard started",
		slog.String("wizard_id", w.id),
		slog.String("transaction_id", req.TransactionID),
		slog.String("step", string(w.step)))
	s.record(ctx, w, domain.EventWizardStarted, nil)
	return w.view(), nil
}

func (s *WizardService) resume(ctx context.Context, w *wizardSession, transactionID string) error {
	tx, err := w.api.GetTransaction(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch transaction to resume", slog.String("transaction_id", transactionID))
		return err
	}

	linked := linkedRecord(tx.Logistics)
	if linked == nil {
		linked, err = w.api.GetTransactionLogistics(ctx, tx.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				return err
			}
			linked = nil
		}
		linked = linkedRecord(linked)
	}

	w.draft.ClientID = tx.ClientID
	w.draft.Client = tx.Client
	w.draft.TransactionID = tx.ID
	w.operation.transaction = tx
	w.operation.loaded = true
	w.operation.form = formFromTransaction(tx)

	if linked != nil {
		op := operationResultFrom(tx, w.operation.form)
		w.draft.Operation = &op
		w.step = domain.StepLogistics
		w.logistics = logisticsState{loaded: true, phase: domain.PhaseLinked, data: linked}
		return nil
	}
	w.step = domain.StepOperation
	return nil
}

func (s *WizardService) GetWizard(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	return w.view(), nil
}

// DiscardWizard drops the wizard. Calls still running for it resolve to
// apperrors.ErrWizardClosed.
func (s *WizardService) DiscardWizard(ctx context.Context, sessionID, wizardID string) error {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return err
	}
	s.wizards.remove(w.id)
	s.LogInfo(ctx, "Wizard discarded", slog.String("wizard_id", w.id))
	s.record(ctx, w, domain.EventWizardDiscarded, nil)
	return nil
}

func (s *WizardService) ListWizardEvents(ctx context.Context, sessionID, wizardID string, params dto.ListEventsParams) (*dto.ListEventsResponse, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEventsPageSize
	}
	query := portsrepo.ListEventsQuery{WizardID: w.id, Limit: limit + 1}
	if params.NextToken != nil && *params.NextToken != "" {
		after, eventID, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid nextToken: " + err.Error())
		}
		query.AfterTime = &after
		query.AfterEvent = eventID
	}

	events, err := s.journal.ListEvents(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wizard events", slog.String("wizard_id", w.id))
		return nil, err
	}

	resp := &dto.ListEventsResponse{Events: events}
	if len(events) > limit {
		resp.Events = events[:limit]
		last := resp.Events[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.ID)
		resp.NextToken = &token
	}
	if resp.Events == nil {
		resp.Events = []domain.WizardEvent{}
	}
	return resp, nil
}

// completeStep advances the wizard with payload, then journals it.
func (s *WizardService) completeStep(ctx context.Context, w *wizardSession, payload domain.StepPayload, details map[string]any) (*dto.WizardView, error) {
	var view *dto.WizardView
	err := w.update(s.now(), func() error {
		if err := w.advanceLocked(payload); err != nil {
			return err
		}
		view = w.viewLocked()
		return nil
	})
	if err != nil {
		return nil, err
	}

	props := map[string]any{"step": string(payload.Step()), "wizard_id": w.id}
	for k, v := range details {
		props[k] = v
	}
	s.record(ctx, w, domain.EventStepCompleted, props)
	if s.analytics.IsInitialized() {
		s.analytics.Enqueue(w.sessionID, "wizard_step_completed", props)
	}
	s.LogInfo(ctx, "Wizard step completed",
		slog.String("wizard_id", w.id),
		slog.String("step", string(payload.Step())),
		slog.String("next_step", string(view.CurrentStep)))
	return view, nil
}

// record appends an audit event. Journal failures are logged, never returned.
func (s *WizardService) record(ctx context.Context, w *wizardSession, eventType domain.WizardEventType, payload map[string]any) {
	if s.journal == nil {
		return
	}
	var (
		step          domain.WizardStep
		transactionID string
	)
	w.read(func() {
		step = w.step
		transactionID = w.draft.TransactionID
	})
	event := domain.WizardEvent{
		ID:            uuid.NewString(),
		WizardID:      w.id,
		SessionID:     w.sessionID,
		TransactionID: transactionID,
		Type:          eventType,
		Step:          step,
		Payload:       payload,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.journal.AppendEvent(context.WithoutCancel(ctx), event); err != nil {
		s.LogError(ctx, err, "Failed to append wizard event",
			slog.String("wizard_id", w.id),
			slog.String("event_type", string(eventType)))
	}
}

// referenceFor returns the wizard's reference data, loading it on first use.
func (s *WizardService) referenceFor(ctx context.Context, w *wizardSession) (*referenceData, error) {
	var data *referenceData
	w.read(func() { data = w.reference })
	if data != nil {
		return data, nil
	}

	err := w.exec(ctx, func(ctx context.Context) error {
		var err error
		data, err = s.reference.load(ctx, w.sessionID, w.api)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := w.update(s.now(), func() error {
		w.reference = data
		return nil
	}); err != nil {
		return nil, err
	}
	return data, nil
}

func requireTransaction(draft domain.TransactionDraft) (string, error) {
	if draft.TransactionID == "" {
		return "", fmt.Errorf("%w: the operation step has not created a transaction yet", apperrors.ErrBusinessRule)
	}
	return draft.TransactionID, nil
}
