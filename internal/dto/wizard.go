package dto

import (
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
)

// StartWizardRequest starts a wizard, optionally re-entering an existing transaction.
type StartWizardRequest struct {
	TransactionID string `json:"transactionId"`
}

// StepStatus is the progress indicator state of one step.
type StepStatus string

const (
	StepDone    StepStatus = "done"
	StepCurrent StepStatus = "current"
	StepPending StepStatus = "pending"
)

// StepProgress is one entry of the progress indicator.
type StepProgress struct {
	Step   domain.WizardStep `json:"step"`
	Status StepStatus        `json:"status"`
}

// WizardView is the controller state rendered by the front end.
type WizardView struct {
	WizardID    string                  `json:"wizardId"`
	CurrentStep domain.WizardStep       `json:"currentStep"`
	Progress    []StepProgress          `json:"progress"`
	Draft       domain.TransactionDraft `json:"draft"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// BuildProgress renders the indicator for current.
func BuildProgress(current domain.WizardStep) []StepProgress {
	progress := make([]StepProgress, len(domain.WizardSteps))
	reached := current == domain.StepFinished
	for i := len(domain.WizardSteps) - 1; i >= 0; i-- {
		step := domain.WizardSteps[i]
		switch {
		case step == current:
			progress[i] = StepProgress{Step: step, Status: StepCurrent}
			reached = true
		case reached:
			progress[i] = StepProgress{Step: step, Status: StepDone}
		default:
			progress[i] = StepProgress{Step: step, Status: StepPending}
		}
	}
	return progress
}

// ListEventsParams defines the query parameters for paging the journal.
type ListEventsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListEventsResponse is one page of the wizard journal.
type ListEventsResponse struct {
	Events    []domain.WizardEvent `json:"events"`
	NextToken *string              `json:"nextToken,omitempty"`
}
