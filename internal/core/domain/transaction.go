package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionState is the server-side lifecycle state of a transaction.
type TransactionState string

const (
	TransactionPending        TransactionState = "PENDING"
	TransactionCompleted      TransactionState = "COMPLETED"
	TransactionCurrentAccount TransactionState = "CURRENT_ACCOUNT"
	TransactionCancelled      TransactionState = "CANCELLED"
)

// MovementType tells whether a detail line brings an asset in or takes it out.
type MovementType string

const (
	Income  MovementType = "INCOME"
	Expense MovementType = "EXPENSE"
)

// TransactionDetail is one movement entry of a transaction.
type TransactionDetail struct {
	AssetID      string          `json:"assetId"`
	MovementType MovementType    `json:"movementType"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes"`
	Asset        *Asset          `json:"asset,omitempty"`
}

// Transaction mirrors the backend transaction record.
type Transaction struct {
	ID                string              `json:"id"`
	ClientID          string              `json:"clientId"`
	Date              time.Time           `json:"date"`
	State             TransactionState    `json:"state"`
	Notes             string              `json:"notes"`
	Details           []TransactionDetail `json:"details"`
	Client            *Client             `json:"client,omitempty"`
	ChildTransactions []Transaction       `json:"childTransactions,omitempty"`
	Logistics         *LogisticData       `json:"logistics,omitempty"`
}

// IsEditable reports whether the operation details may still change.
func (t *Transaction) IsEditable() bool {
	return t.State == TransactionPending
}

// Movement returns the first detail of the given type.
func (t *Transaction) Movement(mt MovementType) (TransactionDetail, bool) {
	for _, d := range t.Details {
		if d.MovementType == mt {
			return d, true
		}
	}
	return TransactionDetail{}, false
}
