package services_test

import (
	"context"
	"sync"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	portsrepo "github.com/JuanseMastrangelo/asset-movements-console/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockBackendAPI is a mock type for the BackendAPI interface
type MockBackendAPI struct {
	mock.Mock
}

func (m *MockBackendAPI) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockBackendAPI) ListTransactionRules(ctx context.Context) ([]domain.TransactionRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRule), args.Error(1)
}

func (m *MockBackendAPI) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockBackendAPI) SearchClients(ctx context.Context, name string) ([]domain.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockBackendAPI) CreateClient(ctx context.Context, input portsrepo.NewClientInput) (*domain.Client, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockBackendAPI) SendClientReport(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockBackendAPI) CreateTransaction(ctx context.Context, input portsrepo.CreateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockBackendAPI) UpdateTransaction(ctx context.Context, transactionID string, input portsrepo.UpdateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockBackendAPI) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockBackendAPI) GetTransactionLogistics(ctx context.Context, transactionID string) (*domain.LogisticData, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LogisticData), args.Error(1)
}

func (m *MockBackendAPI) SaveValues(ctx context.Context, transactionID string, values domain.Values, documents []domain.Document) error {
	args := m.Called(ctx, transactionID, values, documents)
	return args.Error(0)
}

func (m *MockBackendAPI) ListLogisticSettings(ctx context.Context) ([]domain.LogisticSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogisticSettings), args.Error(1)
}

func (m *MockBackendAPI) CalculatePrice(ctx context.Context, req portsrepo.PriceRequest) (*domain.PriceQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceQuote), args.Error(1)
}

func (m *MockBackendAPI) LinkLogistics(ctx context.Context, input portsrepo.LinkLogisticsInput) (*domain.LogisticData, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LogisticData), args.Error(1)
}

func (m *MockBackendAPI) UpdateLogisticsStatus(ctx context.Context, logisticsID string, status domain.LogisticStatus) (*domain.LogisticData, error) {
	args := m.Called(ctx, logisticsID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LogisticData), args.Error(1)
}

// Ensure mock implements the interface
var _ portsrepo.BackendAPI = (*MockBackendAPI)(nil)

// MockBackendConnector hands out the same MockBackendAPI for every session and
// remembers the unauthorized hooks so tests can simulate a backend 401.
type MockBackendConnector struct {
	mock.Mock
	API *MockBackendAPI

	mu    sync.Mutex
	hooks []func()
}

func (m *MockBackendConnector) Login(ctx context.Context, email, password string) (*domain.BackendCredentials, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackendCredentials), args.Error(1)
}

func (m *MockBackendConnector) Connect(creds domain.BackendCredentials, onUnauthorized func()) (portsrepo.BackendAPI, error) {
	m.mu.Lock()
	m.hooks = append(m.hooks, onUnauthorized)
	m.mu.Unlock()
	return m.API, nil
}

// Reject fires every registered unauthorized hook.
func (m *MockBackendConnector) Reject() {
	m.mu.Lock()
	hooks := m.hooks
	m.mu.Unlock()
	for _, h := range hooks {
		h()
	}
}

var _ portsrepo.BackendConnector = (*MockBackendConnector)(nil)
