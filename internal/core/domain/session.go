package domain

import "time"

// BackendCredentials is what a successful backend login yields.
type BackendCredentials struct {
	AccessToken string
	Email       string
	ExpiresAt   time.Time
}

// WizardEventType names an audited wizard action.
type WizardEventType string

const (
	EventWizardStarted      WizardEventType = "WIZARD_STARTED"
	EventWizardDiscarded    WizardEventType = "WIZARD_DISCARDED"
	EventStepCompleted      WizardEventType = "STEP_COMPLETED"
	EventClientCreated      WizardEventType = "CLIENT_CREATED"
	EventClientReportSent   WizardEventType = "CLIENT_REPORT_SENT"
	EventTransactionCreated WizardEventType = "TRANSACTION_CREATED"
	EventTransactionUpdated WizardEventType = "TRANSACTION_UPDATED"
	EventValuesSaved        WizardEventType = "VALUES_SAVED"
	EventLogisticsQuoted    WizardEventType = "LOGISTICS_QUOTED"
	EventLogisticsLinked    WizardEventType = "LOGISTICS_LINKED"
	EventLogisticsStatus    WizardEventType = "LOGISTICS_STATUS_CHANGED"
)

// WizardEvent is one entry of the wizard audit journal.
type WizardEvent struct {
	ID            string          `json:"id"`
	WizardID      string          `json:"wizardId"`
	SessionID     string          `json:"sessionId"`
	TransactionID string          `json:"transactionId,omitempty"`
	Type          WizardEventType `json:"type"`
	Step          WizardStep      `json:"step"`
	Payload       map[string]any  `json:"payload,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
