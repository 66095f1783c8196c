package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/utils/validation"
)

// deliveryWindowMonths bounds how far ahead a delivery can be scheduled.
const deliveryWindowMonths = 3

// LoadLogistics renders the logistics step. The first load looks up linked
// logistics; any failure there means nothing is linked yet.
func (s *WizardService) LoadLogistics(ctx context.Context, sessionID, wizardID string) (*dto.LogisticsView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}

	var (
		loaded        bool
		transactionID string
	)
	w.read(func() {
		loaded = w.logistics.loaded
		transactionID = w.draft.TransactionID
	})
	if err := w.requireStep(domain.StepLogistics); err != nil {
		return nil, err
	}

	settings, err := s.logisticSettings(ctx, w)
	if err != nil {
		return nil, err
	}

	if !loaded && transactionID != "" {
		linked, err := s.fetchLinked(ctx, w, transactionID)
		if err != nil {
			return nil, err
		}
		if err := w.update(s.now(), func() error {
			if w.logistics.loaded {
				return nil
			}
			w.logistics.loaded = true
			if linked != nil {
				w.logistics.phase = domain.PhaseLinked
				w.logistics.data = linked
			}
			return nil
		}); err != nil {
			return nil, err
		}
	}

	var view *dto.LogisticsView
	w.read(func() { view = s.logisticsViewLocked(w, settings) })
	return view, nil
}

// fetchLinked returns the linked record or nil. Only session-level failures
// are returned as errors.
func (s *WizardService) fetchLinked(ctx context.Context, w *wizardSession, transactionID string) (*domain.LogisticData, error) {
	var linked *domain.LogisticData
	err := w.exec(ctx, func(ctx context.Context) error {
		var err error
		linked, err = w.api.GetTransactionLogistics(ctx, transactionID)
		return err
	})
	switch {
	case err == nil:
		return linkedRecord(linked), nil
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrWizardClosed):
		return nil, err
	default:
		s.LogDebug(ctx, "No linked logistics found", slog.String("transaction_id", transactionID), slog.String("reason", err.Error()))
		return nil, nil
	}
}

// QuoteLogistics prices the origin/destination/service triple and moves to Quoted.
func (s *WizardService) QuoteLogistics(ctx context.Context, sessionID, wizardID string, req dto.QuoteLogisticsRequest) (*dto.LogisticsView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	if err := s.requireUnlinked(w); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	settings, err := s.logisticSettings(ctx, w)
	if err != nil {
		return nil, err
	}
	if !hasSetting(settings, req.LogisticServiceID) {
		return nil, validation.NewFieldError(map[string]string{"logisticServiceId": "is not a known logistic service"})
	}

	priceReq := portsrepo.PriceRequest{
		OriginAddress:      strings.TrimSpace(req.Address),
		DestinationAddress: strings.TrimSpace(req.DestinationAddress),
		SettingsID:         req.LogisticServiceID,
	}
	var quote *domain.PriceQuote
	err = w.guarded(ctx, "quote-logistics", func(ctx context.Context) error {
		var err error
		quote, err = w.api.CalculatePrice(ctx, priceReq)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to calculate logistics price", slog.String("wizard_id", w.id))
		return nil, err
	}

	var view *dto.LogisticsView
	err = w.update(s.now(), func() error {
		if err := w.requireStepLocked(domain.StepLogistics); err != nil {
			return err
		}
		if w.logistics.phase == domain.PhaseLinked {
			return fmt.Errorf("%w: logistics were linked meanwhile", apperrors.ErrBusinessRule)
		}
		w.logistics.phase = domain.PhaseQuoted
		w.logistics.quote = quote
		w.logistics.quotedFor = &priceReq
		view = s.logisticsViewLocked(w, settings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, w, domain.EventLogisticsQuoted, map[string]any{
		"settingsId": priceReq.SettingsID,
		"distance":   quote.Distance.String(),
		"totalPrice": quote.TotalPrice.String(),
	})
	return view, nil
}

// LinkLogistics creates the logistics record for the quoted triple with
// status PENDING, then re-fetches it and moves to Linked.
func (s *WizardService) LinkLogistics(ctx context.Context, sessionID, wizardID string, req dto.LinkLogisticsRequest) (*dto.LogisticsView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := s.now()
	deliveryDate := now
	if req.DeliveryDate != nil {
		deliveryDate = *req.DeliveryDate
		if err := checkDeliveryWindow(deliveryDate, now); err != nil {
			return nil, err
		}
	}

	var (
		transactionID string
		quotedFor     *portsrepo.PriceRequest
	)
	err = w.update(now, func() error {
		if err := w.requireStepLocked(domain.StepLogistics); err != nil {
			return err
		}
		if w.logistics.phase != domain.PhaseQuoted {
			return fmt.Errorf("%w: calculate the price before linking logistics", apperrors.ErrBusinessRule)
		}
		quotedFor = w.logistics.quotedFor
		var err error
		transactionID, err = requireTransaction(w.draft)
		return err
	})
	if err != nil {
		return nil, err
	}

	origin := strings.TrimSpace(req.Address)
	destination := strings.TrimSpace(req.DestinationAddress)
	if quotedFor == nil || quotedFor.OriginAddress != origin || quotedFor.DestinationAddress != destination || quotedFor.SettingsID != req.LogisticServiceID {
		return nil, fmt.Errorf("%w: addresses or service changed since the last price calculation", apperrors.ErrBusinessRule)
	}

	input := portsrepo.LinkLogisticsInput{
		TransactionID:         transactionID,
		OriginAddress:         origin,
		DestinationAddress:    destination,
		DeliveryDate:          deliveryDate.UTC(),
		Note:                  composeLogisticsNote(req),
		PaymentResponsibility: req.PaymentOption,
		Status:                domain.LogisticPending,
	}
	var linked *domain.LogisticData
	err = w.guarded(ctx, "link-logistics", func(ctx context.Context) error {
		created, err := w.api.LinkLogistics(ctx, input)
		if err != nil {
			return err
		}
		refetched, err := w.api.GetTransactionLogistics(ctx, transactionID)
		if err != nil {
			s.LogWarn(ctx, err, "Failed to re-fetch logistics after link", slog.String("transaction_id", transactionID))
			linked = created
			return nil
		}
		linked = refetched
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to link logistics", slog.String("wizard_id", w.id), slog.String("transaction_id", transactionID))
		return nil, err
	}

	settings, _ := s.cachedSettings(w)
	var view *dto.LogisticsView
	err = w.update(s.now(), func() error {
		w.logistics.loaded = true
		w.logistics.phase = domain.PhaseLinked
		w.logistics.data = linked
		view = s.logisticsViewLocked(w, settings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Logistics linked", slog.String("wizard_id", w.id), slog.String("logistics_id", linked.ID))
	s.record(ctx, w, domain.EventLogisticsLinked, map[string]any{
		"logisticsId":           linked.ID,
		"deliveryDate":          input.DeliveryDate.Format(time.RFC3339),
		"paymentResponsibility": string(input.PaymentResponsibility),
	})
	return view, nil
}

// UpdateLogisticsStatus changes the status of the linked record. Any status
// can follow any other.
func (s *WizardService) UpdateLogisticsStatus(ctx context.Context, sessionID, wizardID string, status domain.LogisticStatus) (*dto.LogisticsView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, validation.NewFieldError(map[string]string{"status": "must be one of [PENDING IN_PROGRESS COMPLETED CANCELED]"})
	}

	var (
		current       *domain.LogisticData
		transactionID string
	)
	w.read(func() {
		current = w.logistics.data
		transactionID = w.draft.TransactionID
	})
	if err := w.requireStep(domain.StepLogistics); err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: no logistics linked to this transaction", apperrors.ErrBusinessRule)
	}
	if transactionID == "" {
		transactionID = current.TransactionID
	}

	var updated *domain.LogisticData
	err = w.guarded(ctx, "logistics-status", func(ctx context.Context) error {
		changed, err := w.api.UpdateLogisticsStatus(ctx, current.ID, status)
		if err != nil {
			return err
		}
		refetched, err := w.api.GetTransactionLogistics(ctx, transactionID)
		if err != nil {
			s.LogWarn(ctx, err, "Failed to re-fetch logistics after status change", slog.String("transaction_id", transactionID))
			updated = changed
			return nil
		}
		updated = refetched
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to update logistics status", slog.String("wizard_id", w.id))
		return nil, err
	}
	if updated == nil {
		copied := *current
		copied.Status = status
		updated = &copied
	}

	settings, _ := s.cachedSettings(w)
	var view *dto.LogisticsView
	err = w.update(s.now(), func() error {
		w.logistics.data = updated
		view = s.logisticsViewLocked(w, settings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, w, domain.EventLogisticsStatus, map[string]any{
		"logisticsId": current.ID,
		"from":        string(current.Status),
		"to":          string(updated.Status),
	})
	return view, nil
}

// LogisticsSummary renders the linked record as plain text.
func (s *WizardService) LogisticsSummary(ctx context.Context, sessionID, wizardID string) (string, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return "", err
	}
	var data *domain.LogisticData
	w.read(func() { data = w.logistics.data })
	if data == nil {
		return "", fmt.Errorf("%w: no logistics linked to this transaction", apperrors.ErrBusinessRule)
	}
	return renderLogisticsSummary(data), nil
}

// CompleteLogisticsStep finishes the wizard. Logistics are optional; an
// unlinked step completes with no record.
func (s *WizardService) CompleteLogisticsStep(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error) {
	w, err := s.wizard(sessionID, wizardID)
	if err != nil {
		return nil, err
	}
	var data *domain.LogisticData
	w.read(func() {
		if w.logistics.phase == domain.PhaseLinked {
			data = w.logistics.data
		}
	})
	details := map[string]any{"linked": data != nil}
	return s.completeStep(ctx, w, domain.LogisticsStepPayload{Logistics: data}, details)
}

func (s *WizardService) requireUnlinked(w *wizardSession) error {
	var err error
	w.read(func() {
		if err = w.requireStepLocked(domain.StepLogistics); err != nil {
			return
		}
		if w.logistics.phase == domain.PhaseLinked {
			err = fmt.Errorf("%w: logistics are already linked to this transaction", apperrors.ErrBusinessRule)
		}
	})
	return err
}

func (s *WizardService) logisticSettings(ctx context.Context, w *wizardSession) ([]domain.LogisticSettings, error) {
	var settings []domain.LogisticSettings
	err := w.exec(ctx, func(ctx context.Context) error {
		var err error
		settings, err = s.reference.settings(ctx, w.sessionID, w.api)
		return err
	})
	return settings, err
}

func (s *WizardService) cachedSettings(w *wizardSession) ([]domain.LogisticSettings, bool) {
	v, ok := s.reference.cache.Get(settingsKey(w.sessionID))
	if !ok {
		return nil, false
	}
	return v.([]domain.LogisticSettings), true
}

func (s *WizardService) logisticsViewLocked(w *wizardSession, settings []domain.LogisticSettings) *dto.LogisticsView {
	if settings == nil {
		settings = []domain.LogisticSettings{}
	}
	st := w.logistics
	view := &dto.LogisticsView{
		Phase:    st.phase,
		Settings: settings,
		CanQuote: st.phase != domain.PhaseLinked,
		CanLink:  st.phase == domain.PhaseQuoted,
		Window:   deliveryWindow(s.now()),
	}
	switch st.phase {
	case domain.PhaseQuoted:
		view.Quote = st.quote
		if st.quote != nil {
			view.CostBreakdown = &dto.CostBreakdown{
				Distance:   st.quote.Distance,
				PricePerKm: st.quote.PricePerKm,
				Total:      st.quote.TotalPrice,
			}
		}
	case domain.PhaseLinked:
		view.Logistics = st.data
		if st.data != nil {
			view.CostBreakdown = &dto.CostBreakdown{
				Distance:   st.data.Distance,
				PricePerKm: st.data.PricePerKm,
				Total:      st.data.Price,
			}
		}
	}
	return view
}

// linkedRecord treats a record without an id as nothing linked.
func linkedRecord(data *domain.LogisticData) *domain.LogisticData {
	if data == nil || data.ID == "" {
		return nil
	}
	return data
}

func hasSetting(settings []domain.LogisticSettings, id string) bool {
	for _, s := range settings {
		if s.ID == id {
			return true
		}
	}
	return false
}

func deliveryWindow(now time.Time) dto.DeliveryWindow {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return dto.DeliveryWindow{
		Earliest: today,
		Latest:   today.AddDate(0, deliveryWindowMonths, 1).Add(-time.Nanosecond),
	}
}

func checkDeliveryWindow(date, now time.Time) error {
	window := deliveryWindow(now)
	if date.Before(window.Earliest) || date.After(window.Latest) {
		return validation.NewFieldError(map[string]string{
			"deliveryDate": fmt.Sprintf("must be between %s and %s",
				window.Earliest.Format(time.DateOnly), window.Latest.Format(time.DateOnly)),
		})
	}
	return nil
}

func composeLogisticsNote(req dto.LinkLogisticsRequest) string {
	var lines []string
	if instructions := strings.TrimSpace(req.SpecialInstructions); instructions != "" {
		lines = append(lines, instructions)
	}
	lines = append(lines, fmt.Sprintf("Contact: %s (%s)", strings.TrimSpace(req.ContactName), strings.TrimSpace(req.ContactPhone)))
	return strings.Join(lines, "\n")
}

func renderLogisticsSummary(data *domain.LogisticData) string {
	var b strings.Builder
	b.WriteString("LOGISTICS SUMMARY\n")
	fmt.Fprintf(&b, "Logistics ID: %s\n", data.ID)
	fmt.Fprintf(&b, "Transaction ID: %s\n", data.TransactionID)
	fmt.Fprintf(&b, "Status: %s\n", data.Status)
	fmt.Fprintf(&b, "Origin: %s\n", data.OriginAddress)
	fmt.Fprintf(&b, "Destination: %s\n", data.DestinationAddress)
	fmt.Fprintf(&b, "Delivery date: %s\n", data.DeliveryDate.Format(time.DateOnly))
	fmt.Fprintf(&b, "Payment responsibility: %s\n", data.PaymentResponsibility)
	b.WriteString("\nCOST BREAKDOWN\n")
	fmt.Fprintf(&b, "Distance: %s km\n", data.Distance.String())
	fmt.Fprintf(&b, "Price per km: %s\n", data.PricePerKm.StringFixed(2))
	fmt.Fprintf(&b, "Total: %s km x %s = %s\n", data.Distance.String(), data.PricePerKm.StringFixed(2), data.Price.StringFixed(2))
	if data.Note != "" {
		b.WriteString("\nNOTES\n")
		b.WriteString(data.Note)
		b.WriteString("\n")
	}
	return b.String()
}
