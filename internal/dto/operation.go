package dto

import (
	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OperationForm holds the operation step inputs. Amounts may be zero while
// the operator is still typing; Submit enforces the constraints.
type OperationForm struct {
	IngressAssetID string          `json:"ingressAssetId"`
	IngressAmount  decimal.Decimal `json:"ingressAmount"`
	EgressAssetID  string          `json:"egressAssetId"`
	EgressAmount   decimal.Decimal `json:"egressAmount"`
	Notes          string          `json:"notes"`
}

// OperationView is the rendered operation step.
type OperationView struct {
	Form                OperationForm           `json:"form"`
	ExchangeRate        string                  `json:"exchangeRate"`
	ReverseExchangeRate string                  `json:"reverseExchangeRate"`
	Assets              []domain.Asset          `json:"assets"`
	EgressOptions       []domain.Asset          `json:"egressOptions"`
	EgressCleared       bool                    `json:"egressCleared"`
	ReadOnly            bool                    `json:"readOnly"`
	TransactionID       string                  `json:"transactionId,omitempty"`
	TransactionState    domain.TransactionState `json:"transactionState,omitempty"`
}
