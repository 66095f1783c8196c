package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/validation"
)

func (s *WizardService) LoadValues(ctx context.Context, sessionID, wizardID string) (*dto.ValuesView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	var view *dto.ValuesView
	err = w.update(s.now(), func() error {
		if err := w.requireStepLocked(domain.StepValues); err != nil {
			return err
		}
		view = s.valuesViewLocked(w)
		return nil
	})
	return view, err
}

// ApplyValuesChange applies one edit. Changing the currency amount or the
// exchange rate re-derives the total; setting the total overrides it until
// the next input change.
func (s *WizardService) ApplyValuesChange(ctx context.Context, sessionID, wizardID string, change dto.ValuesChange) (*dto.ValuesView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	var view *dto.ValuesView
	err = w.update(s.now(), func() error {
		if err := w.requireStepLocked(domain.StepValues); err != nil {
			return err
		}
		if err := applyValuesChange(&w.values, change); err != nil {
			return err
		}
		view = s.valuesViewLocked(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func applyValuesChange(state *valuesState, change dto.ValuesChange) error {
	switch change.Field {
	case dto.FieldCurrencyAmount:
		state.form.CurrencyAmount = change.Value
	case dto.FieldExchangeRate:
		state.form.ExchangeRate = change.Value
	case dto.FieldTotalAmount:
		state.form.TotalAmount = change.Value
		state.override = true
		return nil
	default:
		return validation.NewFieldError(map[string]string{"field": fmt.Sprintf("unknown field '%s'", change.Field)})
	}
	state.override = false
	state.form.TotalAmount = state.form.CurrencyAmount.Mul(state.form.ExchangeRate)
	return nil
}

// SubmitValues validates the form and the documents, then uploads them.
// Nothing reaches the backend when validation fails. Document content types
// are replaced by the sniffed ones.
func (s *WizardService) SubmitValues(ctx context.Context, sessionID, wizardID string, form dto.ValuesForm, documents []domain.Document) (*dto.WizardView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}

	form.Notes = strings.TrimSpace(form.Notes)
	var transactionID string
	err = w.update(s.now(), func() error {
		if err := w.requireStepLocked(domain.StepValues); err != nil {
			return err
		}
		if !form.TotalAmount.Equal(form.CurrencyAmount.Mul(form.ExchangeRate)) {
			w.values.override = true
		}
		w.values.form = form
		var err error
		transactionID, err = requireTransaction(w.draft)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.validateValues(form, documents); err != nil {
		return nil, err
	}

	values := domain.Values{
		CurrencyAmount: form.CurrencyAmount,
		ExchangeRate:   form.ExchangeRate,
		TotalAmount:    form.TotalAmount,
		Notes:          form.Notes,
	}
	err = w.guarded(ctx, "submit-values", func(ctx context.Context) error {
		return w.api.SaveValues(ctx, transactionID, values, documents)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to save values", slog.String("wizard_id", w.id), slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.record(ctx, w, domain.EventValuesSaved, map[string]any{
		"currencyAmount": values.CurrencyAmount.String(),
		"exchangeRate":   values.ExchangeRate.String(),
		"totalAmount":    values.TotalAmount.String(),
		"documents":      len(documents),
	})
	return s.completeStep(ctx, w, domain.ValuesStepPayload{Values: values, DocumentCount: len(documents)},
		map[string]any{"documents": len(documents)})
}

func (s *WizardService) validateValues(form dto.ValuesForm, documents []domain.Document) error {
	fields := map[string]string{}
	if !form.CurrencyAmount.IsPositive() {
		fields["currencyAmount"] = "must be greater than 0"
	}
	if !form.ExchangeRate.IsPositive() {
		fields["exchangeRate"] = "must be greater than 0"
	}
	if !form.TotalAmount.IsPositive() {
		fields["totalAmount"] = "must be greater than 0"
	}

	if len(documents) > s.cfg.MaxUploadFiles {
		fields["files"] = fmt.Sprintf("at most %d files can be attached, got %d", s.cfg.MaxUploadFiles, len(documents))
	} else {
		var problems []string
		for i, doc := range documents {
			if err := validation.ValidateDocumentSize(doc.Name, int64(len(doc.Content)), s.cfg.MaxUploadFileBytes); err != nil {
				problems = append(problems, err.Error())
				continue
			}
			contentType, err := validation.DetectDocumentType(doc.Content)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", doc.Name, err))
				continue
			}
			documents[i].ContentType = contentType
		}
		if len(problems) > 0 {
			fields["files"] = strings.Join(problems, "; ")
		}
	}

	if len(fields) > 0 {
		return validation.NewFieldError(fields)
	}
	return nil
}

func (s *WizardService) valuesViewLocked(w *wizardSession) *dto.ValuesView {
	return &dto.ValuesView{
		Form:          w.values.form,
		TotalOverride: w.values.override,
		MaxFiles:      s.cfg.MaxUploadFiles,
		MaxFileBytes:  s.cfg.MaxUploadFileBytes,
	}
}
