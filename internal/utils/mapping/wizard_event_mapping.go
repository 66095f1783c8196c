package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/models"
)

// ToModelWizardEvent converts a domain WizardEvent to a model WizardEvent
func ToModelWizardEvent(d domain.WizardEvent) (models.WizardEvent, error) {
	m := models.WizardEvent{
		EventID:    d.ID,
		WizardID:   d.WizardID,
		SessionID:  d.SessionID,
		EventType:  string(d.Type),
		Step:       string(d.Step),
		OccurredAt: d.OccurredAt,
	}
	if d.TransactionID != "" {
		txID := d.TransactionID
		m.TransactionID = &txID
	}
	payload := d.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return models.WizardEvent{}, fmt.Errorf("failed to encode payload of event %s: %w", d.ID, err)
	}
	m.Payload = raw
	return m, nil
}

// ToDomainWizardEvent converts a model WizardEvent to a domain WizardEvent
func ToDomainWizardEvent(m models.WizardEvent) (domain.WizardEvent, error) {
	d := domain.WizardEvent{
		ID:         m.EventID,
		WizardID:   m.WizardID,
		SessionID:  m.SessionID,
		Type:       domain.WizardEventType(m.EventType),
		Step:       domain.WizardStep(m.Step),
		OccurredAt: m.OccurredAt,
	}
	if m.TransactionID != nil {
		d.TransactionID = *m.TransactionID
	}
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &d.Payload); err != nil {
			return domain.WizardEvent{}, fmt.Errorf("failed to decode payload of event %s: %w", m.EventID, err)
		}
		if len(d.Payload) == 0 {
			d.Payload = nil
		}
	}
	return d, nil
}

// ToDomainWizardEventSlice converts a slice of model events
func ToDomainWizardEventSlice(ms []models.WizardEvent) ([]domain.WizardEvent, error) {
	out := make([]domain.WizardEvent, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainWizardEvent(m)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
