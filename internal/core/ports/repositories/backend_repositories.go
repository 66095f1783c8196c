package repositories

import (
	"context"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssetReader exposes the reference data the wizard needs.
type AssetReader interface {
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	ListTransactionRules(ctx context.Context) ([]domain.TransactionRule, error)
}

// NewClientInput is the payload for creating a client.
type NewClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Country string `json:"country"`
}

// ClientRepository covers the backend client endpoints.
type ClientRepository interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	SearchClients(ctx context.Context, name string) ([]domain.Client, error)
	CreateClient(ctx context.Context, input NewClientInput) (*domain.Client, error)
	SendClientReport(ctx context.Context, clientID string) error
}

// DetailInput is one movement line sent to the backend.
type DetailInput struct {
	AssetID      string              `json:"assetId"`
	MovementType domain.MovementType `json:"movementType"`
	Amount       decimal.Decimal     `json:"amount"`
	Notes        string              `json:"notes"`
}

// CreateTransactionInput is the body of POST /transactions.
type CreateTransactionInput struct {
	ClientID string        `json:"clientId"`
	Notes    string        `json:"notes,omitempty"`
	Details  []DetailInput `json:"details"`
}

// UpdateTransactionInput is the body of PATCH /transactions/:id.
type UpdateTransactionInput struct {
	Notes   string        `json:"notes,omitempty"`
	Details []DetailInput `json:"details"`
}

// TransactionRepository covers the backend transaction endpoints.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, input UpdateTransactionInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// GetTransactionLogistics returns apperrors.ErrNotFound when nothing is linked.
	GetTransactionLogistics(ctx context.Context, transactionID string) (*domain.LogisticData, error)
}

// ValuesRepository persists the values step.
type ValuesRepository interface {
	SaveValues(ctx context.Context, transactionID string, values domain.Values, documents []domain.Document) error
}

// PriceRequest is the body of POST /logistics/calculate.
type PriceRequest struct {
	OriginAddress      string `json:"originAddress"`
	DestinationAddress string `json:"destinationAddress"`
	SettingsID         string `json:"settingsId"`
}

// LinkLogisticsInput is the body of POST /logistics.
type LinkLogisticsInput struct {
	TransactionID         string                       `json:"transactionId"`
	OriginAddress         string                       `json:"originAddress"`
	DestinationAddress    string                       `json:"destinationAddress"`
	DeliveryDate          time.Time                    `json:"deliveryDate"`
	Note                  string                       `json:"note"`
	PaymentResponsibility domain.PaymentResponsibility `json:"paymentResponsibility"`
	Status                domain.LogisticStatus        `json:"status"`
}

// LogisticsRepository covers the backend logistics endpoints.
type LogisticsRepository interface {
	ListLogisticSettings(ctx context.Context) ([]domain.LogisticSettings, error)
	CalculatePrice(ctx context.Context, req PriceRequest) (*domain.PriceQuote, error)
	LinkLogistics(ctx context.Context, input LinkLogisticsInput) (*domain.LogisticData, error)
	UpdateLogisticsStatus(ctx context.Context, logisticsID string, status domain.LogisticStatus) (*domain.LogisticData, error)
}

// BackendAPI is everything one authenticated console session can call.
type BackendAPI interface {
	AssetReader
	ClientRepository
	TransactionRepository
	ValuesRepository
	LogisticsRepository
}

// BackendConnector opens authenticated backend sessions.
type BackendConnector interface {
	Login(ctx context.Context, email, password string) (*domain.BackendCredentials, error)
	// Connect returns an API bound to creds. onUnauthorized runs once, the
	// first time the backend answers 401 for these credentials.
	Connect(creds domain.BackendCredentials, onUnauthorized func()) (BackendAPI, error)
}
