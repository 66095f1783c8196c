package dto

import "github.com/shopspring/decimal"

// ValuesField names an editable scalar of the values step.
type ValuesField string

const (
	FieldCurrencyAmount ValuesField = "currencyAmount"
	FieldExchangeRate   ValuesField = "exchangeRate"
	FieldTotalAmount    ValuesField = "totalAmount"
)

// ValuesChange is one edit of the values form.
type ValuesChange struct {
	Field ValuesField     `json:"field" binding:"required,oneof=currencyAmount exchangeRate totalAmount"`
	Value decimal.Decimal `json:"value"`
}

// ValuesForm is the full values step form.
type ValuesForm struct {
	CurrencyAmount decimal.Decimal `json:"currencyAmount"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Notes          string          `json:"notes"`
}

// ValuesView is the rendered values step.
type ValuesView struct {
	Form          ValuesForm `json:"form"`
	TotalOverride bool       `json:"totalOverride"`
	MaxFiles      int        `json:"maxFiles"`
	MaxFileBytes  int64      `json:"maxFileBytes"`
}
