package handlers

import (
	"context"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portssvc "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/services"
	"github.com/JuanseMastrangelo/asset-movements-console/internal/dto"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock type for the AuthSvcFacade interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) SessionActive(sessionID string) bool {
	args := m.Called(sessionID)
	return args.Bool(0)
}

// MockReferenceService is a mock type for the ReferenceSvc interface
type MockReferenceService struct {
	mock.Mock
}

func (m *MockReferenceService) ListAssets(ctx context.Context, sessionID string) ([]domain.Asset, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockReferenceService) ListTransactionRules(ctx context.Context, sessionID string) ([]domain.TransactionRule, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRule), args.Error(1)
}

func (m *MockReferenceService) ListLogisticSettings(ctx context.Context, sessionID string) ([]domain.LogisticSettings, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogisticSettings), args.Error(1)
}

// MockWizardService is a mock type for the WizardSvcFacade interface
type MockWizardService struct {
	mock.Mock
}

func (m *MockWizardService) wizardView(args mock.Arguments) (*dto.WizardView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WizardView), args.Error(1)
}

func (m *MockWizardService) StartWizard(ctx context.Context, sessionID string, req dto.StartWizardRequest) (*dto.WizardView, error) {
	return m.wizardView(m.Called(ctx, sessionID, req))
}

func (m *MockWizardService) GetWizard(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error) {
	return m.wizardView(m.Called(ctx, sessionID, wizardID))
}

func (m *MockWizardService) DiscardWizard(ctx context.Context, sessionID, wizardID string) error {
	args := m.Called(ctx, sessionID, wizardID)
	return args.Error(0)
}

func (m *MockWizardService) ListWizardEvents(ctx context.Context, sessionID, wizardID string, params dto.ListEventsParams) (*dto.ListEventsResponse, error) {
	args := m.Called(ctx, sessionID, wizardID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEventsResponse), args.Error(1)
}

func (m *MockWizardService) clientView(args mock.Arguments) (*dto.ClientStepView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ClientStepView), args.Error(1)
}

func (m *MockWizardService) ListClients(ctx context.Context, sessionID, wizardID, name string) (*dto.ClientStepView, error) {
	return m.clientView(m.Called(ctx, sessionID, wizardID, name))
}

func (m *MockWizardService) CreateClient(ctx context.Context, sessionID, wizardID string, req dto.CreateClientRequest) (*dto.ClientStepView, error) {
	return m.clientView(m.Called(ctx, sessionID, wizardID, req))
}

func (m *MockWizardService) SelectClient(ctx context.Context, sessionID, wizardID, clientID string) (*dto.ClientStepView, error) {
	return m.clientView(m.Called(ctx, sessionID, wizardID, clientID))
}

func (m *MockWizardService) SendClientReport(ctx context.Context, sessionID, wizardID, clientID string) error {
	args := m.Called(ctx, sessionID, wizardID, clientID)
	return args.Error(0)
}

func (m *MockWizardService) CompleteClientStep(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error) {
	return m.wizardView(m.Called(ctx, sessionID, wizardID))
}

func (m *MockWizardService) operationView(args mock.Arguments) (*dto.OperationView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OperationView), args.Error(1)
}

func (m *MockWizardService) LoadOperation(ctx context.Context, sessionID, wizardID string) (*dto.OperationView, error) {
	return m.operationView(m.Called(ctx, sessionID, wizardID))
}

func (m *MockWizardService) PreviewOperation(ctx context.Context, sessionID, wizardID string, form dto.OperationForm) (*dto.OperationView, error) {
	return m.operationView(m.Called(ctx, sessionID, wizardID, form))
}

func (m *MockWizardService) SubmitOperation(ctx context.Context, sessionID, wizardID string, form dto.OperationForm) (*dto.WizardView, error) {
	return m.wizardView(m.Called(ctx, sessionID, wizardID, form))
}

func (m *MockWizardService) valuesView(args mock.Arguments) (*dto.ValuesView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ValuesView), args.Error(1)
}

func (m *MockWizardService) LoadValues(ctx context.Context, sessionID, wizardID string) (*dto.ValuesView, error) {
	return m.valuesView(m.Called(ctx, sessionID, wizardID))
}

func (m *MockWizardService) ApplyValuesChange(ctx context.Context, sessionID, wizardID string, change dto.ValuesChange) (*dto.ValuesView, error) {
	return m.valuesView(m.Called(ctx, sessionID, wizardID, change))
}

func (m *MockWizardService) SubmitValues(ctx context.Context, sessionID, wizardID string, form dto.ValuesForm, documents []domain.Document) (*dto.WizardView, error) {
	return m.wizardView(m.Called(ctx, sessionID, wizardID, form, documents))
}

func (m *MockWizardService) logisticsView(args mock.Arguments) (*dto.LogisticsView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LogisticsView), args.Error(1)
}

func (m *MockWizardService) LoadLogistics(ctx context.Context, sessionID, wizardID string) (*dto.LogisticsView, error) {
	return m.logisticsView(m.Called(ctx, sessionID, wizardID))
}

func (m *MockWizardService) QuoteLogistics(ctx context.Context, sessionID, wizardID string, req dto.QuoteLogisticsRequest) (*dto.LogisticsView, error) {
	return m.logisticsView(m.Called(ctx, sessionID, wizardID, req))
}

func (m *MockWizardService) LinkLogistics(ctx context.Context, sessionID, wizardID string, req dto.LinkLogisticsRequest) (*dto.LogisticsView, error) {
	return m.logisticsView(m.Called(ctx, sessionID, wizardID, req))
}

func (m *MockWizardService) UpdateLogisticsStatus(ctx context.Context, sessionID, wizardID string, status domain.LogisticStatus) (*dto.LogisticsView, error) {
	return m.logisticsView(m.Called(ctx, sessionID, wizardID, status))
}

func (m *MockWizardService) LogisticsSummary(ctx context.Context, sessionID, wizardID string) (string, error) {
	args := m.Called(ctx, sessionID, wizardID)
	return args.String(0), args.Error(1)
}

func (m *MockWizardService) CompleteLogisticsStep(ctx context.Context, sessionID, wizardID string) (*dto.WizardView, error) {
	return m.wizardView(m.Called(ctx, sessionID, wizardID))
}

var (
	_ portssvc.AuthSvcFacade   = (*MockAuthService)(nil)
	_ portssvc.ReferenceSvc    = (*MockReferenceService)(nil)
	_ portssvc.WizardSvcFacade = (*MockWizardService)(nil)
)
