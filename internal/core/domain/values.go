package domain

import "github.com/shopspring/decimal"

// Values is the value-capture slice of a transaction.
type Values struct {
	CurrencyAmount decimal.Decimal `json:"currencyAmount"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Notes          string          `json:"notes"`
}

// Document is a supporting file attached to the values step.
type Document struct {
	Name        string
	ContentType string
	Content     []byte
}
