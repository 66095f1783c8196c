package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/validation"
	"github.com/shopspring/decimal"
)

// LoadOperation renders the operation step, fetching the draft's transaction
// the first time when one exists.
func (s *WizardService) LoadOperation(ctx context.Context, sessionID, wizardID string) (*dto.OperationView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	if err := w.requireStep(domain.StepOperation); err != nil {
		return nil, err
	}
	ref, err := s.referenceFor(ctx, w)
	if err != nil {
		return nil, err
	}

	var (
		transactionID string
		loaded        bool
	)
	w.read(func() {
		transactionID = w.draft.TransactionID
		loaded = w.operation.loaded
	})

	if transactionID != "" && !loaded {
		var tx *domain.Transaction
		err := w.guarded(ctx, "load-transaction", func(ctx context.Context) error {
			var err error
			tx, err = w.api.GetTransaction(ctx, transactionID)
			return err
		})
		if err != nil {
			s.LogWarn(ctx, err, "Failed to load transaction", slog.String("wizard_id", w.id), slog.String("transaction_id", transactionID))
			return nil, err
		}
		if err := w.update(s.now(), func() error {
			w.operation.transaction = tx
			w.operation.form = formFromTransaction(tx)
			w.operation.loaded = true
			return nil
		}); err != nil {
			return nil, err
		}
	}

	var view *dto.OperationView
	w.read(func() { view = buildOperationView(w.operation.form, ref, w.operation.transaction) })
	return view, nil
}

// PreviewOperation derives rates and egress options for form and keeps it as
// the step's current form. A read-only transaction ignores the input.
func (s *WizardService) PreviewOperation(ctx context.Context, sessionID, wizardID string, form dto.OperationForm) (*dto.OperationView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	if err := w.requireStep(domain.StepOperation); err != nil {
		return nil, err
	}
	ref, err := s.referenceFor(ctx, w)
	if err != nil {
		return nil, err
	}

	var view *dto.OperationView
	err = w.update(s.now(), func() error {
		if err := w.requireStepLocked(domain.StepOperation); err != nil {
			return err
		}
		tx := w.operation.transaction
		if tx != nil && !tx.IsEditable() {
			view = buildOperationView(w.operation.form, ref, tx)
			return nil
		}
		view = buildOperationView(form, ref, tx)
		w.operation.form = view.Form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SubmitOperation creates or patches the transaction and advances. A
// transaction that is no longer PENDING advances without validation or any
// backend call.
func (s *WizardService) SubmitOperation(ctx context.Context, sessionID, wizardID string, form dto.OperationForm) (*dto.WizardView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	if err := w.requireStep(domain.StepOperation); err != nil {
		return nil, err
	}

	var (
		tx    *domain.Transaction
		draft domain.TransactionDraft
	)
	w.read(func() {
		tx = w.operation.transaction
		draft = w.draft
	})
	if tx != nil && !tx.IsEditable() {
		var stored dto.OperationForm
		w.read(func() { stored = w.operation.form })
		result := operationResultFrom(tx, stored)
		return s.completeStep(ctx, w, domain.OperationStepPayload{TransactionID: tx.ID, Operation: result},
			map[string]any{"readOnly": true, "transactionState": string(tx.State)})
	}

	ref, err := s.referenceFor(ctx, w)
	if err != nil {
		return nil, err
	}

	form.Notes = strings.TrimSpace(form.Notes)
	if err := w.update(s.now(), func() error {
		w.operation.form = form
		return nil
	}); err != nil {
		return nil, err
	}

	ingress, egress, err := validateOperation(form, ref.Graph)
	if err != nil {
		return nil, err
	}
	details := []portsrepo.DetailInput{
		{AssetID: ingress.ID, MovementType: domain.Income, Amount: form.IngressAmount, Notes: "Income of " + ingress.Name},
		{AssetID: egress.ID, MovementType: domain.Expense, Amount: form.EgressAmount, Notes: "Expense of " + egress.Name},
	}

	editing := draft.TransactionID != ""
	if !editing && draft.ClientID == "" {
		return nil, fmt.Errorf("%w: no client selected for the new transaction", apperrors.ErrBusinessRule)
	}

	var saved *domain.Transaction
	err = w.guarded(ctx, "submit-operation", func(ctx context.Context) error {
		var err error
		if editing {
			saved, err = w.api.UpdateTransaction(ctx, draft.TransactionID, portsrepo.UpdateTransactionInput{
				Notes:   form.Notes,
				Details: details,
			})
		} else {
			saved, err = w.api.CreateTransaction(ctx, portsrepo.CreateTransactionInput{
				ClientID: draft.ClientID,
				Notes:    form.Notes,
				Details:  details,
			})
		}
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to submit operation", slog.String("wizard_id", w.id), slog.Bool("editing", editing))
		return nil, err
	}

	transactionID := draft.TransactionID
	if saved != nil && saved.ID != "" {
		transactionID = saved.ID
	}
	if transactionID == "" {
		return nil, apperrors.NewNetworkError(0, "backend did not return a transaction id")
	}

	if err := w.update(s.now(), func() error {
		if saved != nil {
			if saved.ID == "" {
				saved.ID = transactionID
			}
			w.operation.transaction = saved
		}
		w.operation.loaded = true
		return nil
	}); err != nil {
		return nil, err
	}

	eventType := domain.EventTransactionCreated
	if editing {
		eventType = domain.EventTransactionUpdated
	}
	s.record(ctx, w, eventType, map[string]any{
		"transactionId":  transactionID,
		"ingressAssetId": ingress.ID,
		"ingressAmount":  form.IngressAmount.String(),
		"egressAssetId":  egress.ID,
		"egressAmount":   form.EgressAmount.String(),
	})

	result := domain.OperationResult{
		IngressAssetID:      ingress.ID,
		IngressAmount:       form.IngressAmount.String(),
		EgressAssetID:       egress.ID,
		EgressAmount:        form.EgressAmount.String(),
		ExchangeRate:        utils.FormatRate(form.EgressAmount, form.IngressAmount),
		ReverseExchangeRate: utils.FormatRate(form.IngressAmount, form.EgressAmount),
		Notes:               form.Notes,
	}
	return s.completeStep(ctx, w, domain.OperationStepPayload{TransactionID: transactionID, Operation: result},
		map[string]any{"transactionId": transactionID})
}

// validateOperation checks required fields and amounts first, then the rule graph.
func validateOperation(form dto.OperationForm, graph *domain.RuleGraph) (domain.Asset, domain.Asset, error) {
	fields := map[string]string{}
	ingress, ingressKnown := graph.Asset(form.IngressAssetID)
	egress, egressKnown := graph.Asset(form.EgressAssetID)

	switch {
	case form.IngressAssetID == "":
		fields["ingressAssetId"] = "is required"
	case !ingressKnown:
		fields["ingressAssetId"] = "is not a known asset"
	}
	if !form.IngressAmount.IsPositive() {
		fields["ingressAmount"] = "must be greater than 0"
	}
	switch {
	case form.EgressAssetID == "":
		fields["egressAssetId"] = "is required"
	case !egressKnown:
		fields["egressAssetId"] = "is not a known asset"
	}
	if !form.EgressAmount.IsPositive() {
		fields["egressAmount"] = "must be greater than 0"
	}
	if len(fields) > 0 {
		return domain.Asset{}, domain.Asset{}, validation.NewFieldError(fields)
	}

	if !graph.Allows(ingress.ID, egress.ID) {
		return domain.Asset{}, domain.Asset{}, fmt.Errorf("%w: no transaction rule allows %s -> %s",
			apperrors.ErrBusinessRule, ingress.Name, egress.Name)
	}
	return ingress, egress, nil
}

// buildOperationView derives rates and filters egress options. An egress
// asset no longer reachable from the ingress asset is cleared.
func buildOperationView(form dto.OperationForm, ref *referenceData, tx *domain.Transaction) *dto.OperationView {
	view := &dto.OperationView{
		Assets:        ref.Graph.Assets(),
		EgressOptions: ref.Graph.EgressOptions(form.IngressAssetID),
	}
	if tx != nil {
		view.TransactionID = tx.ID
		view.TransactionState = tx.State
		view.ReadOnly = !tx.IsEditable()
	}
	if !view.ReadOnly && form.EgressAssetID != "" && !ref.Graph.Allows(form.IngressAssetID, form.EgressAssetID) {
		form.EgressAssetID = ""
		view.EgressCleared = true
	}
	view.Form = form
	view.ExchangeRate = utils.FormatRate(form.EgressAmount, form.IngressAmount)
	view.ReverseExchangeRate = utils.FormatRate(form.IngressAmount, form.EgressAmount)
	return view
}

func formFromTransaction(tx *domain.Transaction) dto.OperationForm {
	form := dto.OperationForm{Notes: tx.Notes}
	if in, ok := tx.Movement(domain.Income); ok {
		form.IngressAssetID = in.AssetID
		form.IngressAmount = in.Amount
	}
	if out, ok := tx.Movement(domain.Expense); ok {
		form.EgressAssetID = out.AssetID
		form.EgressAmount = out.Amount
	}
	return form
}

func operationResultFrom(tx *domain.Transaction, form dto.OperationForm) domain.OperationResult {
	return domain.OperationResult{
		IngressAssetID:      form.IngressAssetID,
		IngressAmount:       decimalString(form.IngressAmount),
		EgressAssetID:       form.EgressAssetID,
		EgressAmount:        decimalString(form.EgressAmount),
		ExchangeRate:        utils.FormatRate(form.EgressAmount, form.IngressAmount),
		ReverseExchangeRate: utils.FormatRate(form.IngressAmount, form.EgressAmount),
		Notes:               form.Notes,
		ReadOnly:            !tx.IsEditable(),
	}
}

func decimalString(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
