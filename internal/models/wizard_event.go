package models

import "time"

// WizardEvent is one row of the wizard_events table.
type WizardEvent struct {
	EventID       string    `json:"eventID"`
	WizardID      string    `json:"wizardID"`
	SessionID     string    `json:"sessionID"`
	TransactionID *string   `json:"transactionID"` // Nullable until the operation step created one
	EventType     string    `json:"eventType"`
	Step          string    `json:"step"`
	Payload       []byte    `json:"payload"` // JSONB
	OccurredAt    time.Time `json:"occurredAt"`
}
