package services

import (
	"context"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
)

// WizardControllerSvc owns step sequencing and the draft of each wizard.
type WizardControllerSvc interface {
	// StartWizard opens a wizard. With a transaction id the existing
	// transaction is fetched and the wizard resumes at the step it implies.
	StartWizard(ctx context.Context, sessionID string, req dto.StartWizardRequest) (*dto.WizardView, error)

	// GetWizard returns the controller state.
	GetWizard(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error)

	// DiscardWizard cancels in-flight work and drops the wizard.
	DiscardWizard(ctx context.Context, sessionID, wizardID string) error

	// ListWizardEvents pages through the wizard's audit journal.
	ListWizardEvents(ctx context.Context, sessionID, wizardID string, params dto.ListEventsParams) (*dto.ListEventsResponse, error)
}

// ClientStepSvc drives the client selection step.
type ClientStepSvc interface {
	// ListClients lists all clients, or searches by name through the wizard's debouncer.
	ListClients(ctx context.Context, sessionID, wizardID, name string) (*dto.ClientStepView, error)
	CreateClient(ctx context.Context, sessionID, wizardID string, req dto.CreateClientRequest) (*dto.ClientStepView, error)
	SelectClient(ctx context.Context, sessionID, wizardID, clientID string) (*dto.ClientStepView, error)
	SendClientReport(ctx context.Context, sessionID, wizardID, clientID string) error
	CompleteClientStep(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error)
}

// OperationStepSvc drives the ingress/egress operation step.
type OperationStepSvc interface {
	LoadOperation(ctx context.Context, sessionID, wizardID string) (*dto.OperationView, error)
	PreviewOperation(ctx context.Context, sessionID, wizardID string, form dto.OperationForm) (*dto.OperationView, error)
	SubmitOperation(ctx context.Context, sessionID, wizardID string, form dto.OperationForm) (*dto.WizardView, error)
}

// ValuesStepSvc drives the values step.
type ValuesStepSvc interface {
	LoadValues(ctx context.Context, sessionID, wizardID string) (*dto.ValuesView, error)
	ApplyValuesChange(ctx context.Context, sessionID, wizardID string, change dto.ValuesChange) (*dto.ValuesView, error)
	SubmitValues(ctx context.Context, sessionID, wizardID string, form dto.ValuesForm, documents []domain.Document) (*dto.WizardView, error)
}

// LogisticsStepSvc drives the logistics sub-state machine.
type LogisticsStepSvc interface {
	LoadLogistics(ctx context.Context, sessionID, wizardID string) (*dto.LogisticsView, error)
	QuoteLogistics(ctx context.Context, sessionID, wizardID string, req dto.QuoteLogisticsRequest) (*dto.LogisticsView, error)
	LinkLogistics(ctx context.Context, sessionID, wizardID string, req dto.LinkLogisticsRequest) (*dto.LogisticsView, error)
	UpdateLogisticsStatus(ctx context.Context, sessionID, wizardID string, status domain.LogisticStatus) (*dto.LogisticsView, error)
	// LogisticsSummary renders the linked record as downloadable text.
	LogisticsSummary(ctx context.Context, sessionID, wizardID string) (string, error)
	CompleteLogisticsStep(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error)
}

// WizardSvcFacade combines all wizard-related service interfaces.
type WizardSvcFacade interface {
	WizardControllerSvc
	ClientStepSvc
	OperationStepSvc
	ValuesStepSvc
	LogisticsStepSvc
}
