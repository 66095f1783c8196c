package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogisticStatus is the delivery status of a linked logistics record.
type LogisticStatus string

const (
	LogisticPending    LogisticStatus = "PENDING"
	LogisticInProgress LogisticStatus = "IN_PROGRESS"
	LogisticCompleted  LogisticStatus = "COMPLETED"
	LogisticCanceled   LogisticStatus = "CANCELED"
)

// Valid reports whether s is a known status.
func (s LogisticStatus) Valid() bool {
	switch s {
	case LogisticPending, LogisticInProgress, LogisticCompleted, LogisticCanceled:
		return true
	}
	return false
}

// PaymentResponsibility says who pays the delivery.
type PaymentResponsibility string

const (
	PaidByClient PaymentResponsibility = "CLIENT"
	PaidShared   PaymentResponsibility = "SHARED"
	PaidBySystem PaymentResponsibility = "SYSTEM"
)

// LogisticData is the delivery record linked to a transaction.
type LogisticData struct {
	ID                    string                `json:"id"`
	TransactionID         string                `json:"transactionId"`
	OriginAddress         string                `json:"originAddress"`
	DestinationAddress    string                `json:"destinationAddress"`
	Distance              decimal.Decimal       `json:"distance"`
	Price                 decimal.Decimal       `json:"price"`
	PricePerKm            decimal.Decimal       `json:"pricePerKm"`
	DeliveryDate          time.Time             `json:"deliveryDate"`
	Note                  string                `json:"note"`
	PaymentResponsibility PaymentResponsibility `json:"paymentResponsibility"`
	Status                LogisticStatus        `json:"status"`
}

// LogisticSettings is one selectable logistic service with its tariff.
type LogisticSettings struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	PricePerKm decimal.Decimal `json:"pricePerKm"`
	IsActive   bool            `json:"isActive"`
}

// PriceQuote is the pricing endpoint's answer for an origin/destination/service triple.
type PriceQuote struct {
	Distance     decimal.Decimal  `json:"distance"`
	BasePrice    decimal.Decimal  `json:"basePrice"`
	PricePerKm   decimal.Decimal  `json:"pricePerKm"`
	TotalPrice   decimal.Decimal  `json:"totalPrice"`
	SettingsUsed LogisticSettings `json:"settingsUsed"`
}

// LogisticsPhase is the explicit state of the logistics step.
type LogisticsPhase string

const (
	PhaseNoLogistic LogisticsPhase = "NO_LOGISTIC"
	PhaseQuoted     LogisticsPhase = "QUOTED"
	PhaseLinked     LogisticsPhase = "LINKED"
)
