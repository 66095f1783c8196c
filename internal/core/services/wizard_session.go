package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/debounce"
)

type clientState struct {
	clients  []domain.Client
	selected *domain.Client
	// listSeq orders list/search responses; only the latest one is applied.
	listSeq uint64
}

type operationState struct {
	form        dto.OperationForm
	transaction *domain.Transaction
	loaded      bool
}

type valuesState struct {
	form     dto.ValuesForm
	override bool
}

type logisticsState struct {
	loaded    bool
	phase     domain.LogisticsPhase
	quote     *domain.PriceQuote
	quotedFor *portsrepo.PriceRequest
	data      *domain.LogisticData
}

// wizardSession is one open wizard. mu guards every field below it and is
// never held across a backend call.
type wizardSession struct {
	id        string
	sessionID string
	api       portsrepo.BackendAPI
	ctx       context.Context
	cancel    context.CancelFunc
	search    *debounce.Debouncer

	mu        sync.Mutex
	inflight  map[string]struct{}
	step      domain.WizardStep
	draft     domain.TransactionDraft
	createdAt time.Time
	updatedAt time.Time
	reference *referenceData
	client    clientState
	operation operationState
	values    valuesState
	logistics logisticsState
}

func newWizardSession(id string, session *ConsoleSession, searchDelay time.Duration, now time.Time) *wizardSession {
	ctx, cancel := context.WithCancel(context.Background())
	return &wizardSession{
		id:        id,
		sessionID: session.ID,
		api:       session.API,
		ctx:       ctx,
		cancel:    cancel,
		search:    debounce.New(searchDelay),
		inflight:  make(map[string]struct{}),
		step:      domain.StepClient,
		createdAt: now,
		updatedAt: now,
		logistics: logisticsState{phase: domain.PhaseNoLogistic},
	}
}

func (w *wizardSession) closed() bool {
	return w.ctx.Err() != nil
}

// discard cancels in-flight calls and the pending search. Safe to call twice.
func (w *wizardSession) discard() {
	w.cancel()
	w.search.Cancel()
}

// exec runs fn with a context cancelled by either ctx or the wizard. A result
// arriving after the wizard was discarded is dropped, except a backend 401,
// which tears the session down and must reach the caller as such.
func (w *wizardSession) exec(ctx context.Context, fn func(ctx context.Context) error) error {
	if w.closed() {
		return apperrors.ErrWizardClosed
	}
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(w.ctx, cancel)
	defer stop()

	err := fn(callCtx)
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return err
	}
	if w.closed() {
		return apperrors.ErrWizardClosed
	}
	return err
}

// guarded is exec with a per-action in-flight guard: a second concurrent
// call of the same action fails with apperrors.ErrActionInFlight.
func (w *wizardSession) guarded(ctx context.Context, action string, fn func(ctx context.Context) error) error {
	w.mu.Lock()
	if _, busy := w.inflight[action]; busy {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", apperrors.ErrActionInFlight, action)
	}
	w.inflight[action] = struct{}{}
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.inflight, action)
		w.mu.Unlock()
	}()
	return w.exec(ctx, fn)
}

// update applies fn to the state under the lock unless the wizard was discarded.
func (w *wizardSession) update(now time.Time, fn func() error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed() {
		return apperrors.ErrWizardClosed
	}
	if err := fn(); err != nil {
		return err
	}
	w.updatedAt = now
	return nil
}

// nextListSeq claims the sequence number of a new list/search request.
func (w *wizardSession) nextListSeq(now time.Time) (uint64, error) {
	var seq uint64
	err := w.update(now, func() error {
		w.client.listSeq++
		seq = w.client.listSeq
		return nil
	})
	return seq, err
}

// read runs fn under the lock.
func (w *wizardSession) read(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

// requireStepLocked checks that step is the current one. Caller holds mu.
func (w *wizardSession) requireStepLocked(step domain.WizardStep) error {
	if w.step != step {
		return fmt.Errorf("%w: wizard is at step '%s', not '%s'", apperrors.ErrStepOutOfOrder, w.step, step)
	}
	return nil
}

func (w *wizardSession) requireStep(step domain.WizardStep) error {
	var err error
	w.read(func() { err = w.requireStepLocked(step) })
	if err == nil && w.closed() {
		return apperrors.ErrWizardClosed
	}
	return err
}

// advanceLocked merges payload into the draft and moves to the next step.
// Caller holds mu.
func (w *wizardSession) advanceLocked(payload domain.StepPayload) error {
	if err := w.requireStepLocked(payload.Step()); err != nil {
		return err
	}
	if err := w.draft.Merge(payload); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	w.step = payload.Step().Next()
	return nil
}

// viewLocked renders the controller state. Caller holds mu.
func (w *wizardSession) viewLocked() *dto.WizardView {
	return &dto.WizardView{
		WizardID:    w.id,
		CurrentStep: w.step,
		Progress:    dto.BuildProgress(w.step),
		Draft:       w.draft,
		CreatedAt:   w.createdAt,
		UpdatedAt:   w.updatedAt,
	}
}

func (w *wizardSession) view() *dto.WizardView {
	var v *dto.WizardView
	w.read(func() { v = w.viewLocked() })
	return v
}
