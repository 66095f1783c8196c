package dto

import (
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuoteLogisticsRequest is what "Calculate Price" needs.
type QuoteLogisticsRequest struct {
	Address            string `json:"address" binding:"required"`
	DestinationAddress string `json:"destinationAddress" binding:"required"`
	LogisticServiceID  string `json:"logisticServiceId" binding:"required"`
}

// LinkLogisticsRequest is the full logistics entry form.
type LinkLogisticsRequest struct {
	Address             string                       `json:"address" binding:"required,min=10"`
	DestinationAddress  string                       `json:"destinationAddress" binding:"required,min=10"`
	ContactName         string                       `json:"contactName" binding:"required,min=3"`
	ContactPhone        string                       `json:"contactPhone" binding:"required,phone"`
	PaymentOption       domain.PaymentResponsibility `json:"paymentOption" binding:"required,oneof=CLIENT SHARED SYSTEM"`
	LogisticServiceID   string                       `json:"logisticServiceId" binding:"required"`
	SpecialInstructions string                       `json:"specialInstructions"`
	DeliveryDate        *time.Time                   `json:"deliveryDate"`
}

// UpdateLogisticsStatusRequest changes the delivery status of a linked record.
type UpdateLogisticsStatusRequest struct {
	Status domain.LogisticStatus `json:"status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELED"`
}

// CostBreakdown is distance x price-per-km = total.
type CostBreakdown struct {
	Distance   decimal.Decimal `json:"distance"`
	PricePerKm decimal.Decimal `json:"pricePerKm"`
	Total      decimal.Decimal `json:"total"`
}

// DeliveryWindow is the accepted delivery date range.
type DeliveryWindow struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// LogisticsView is the rendered logistics step.
type LogisticsView struct {
	Phase         domain.LogisticsPhase     `json:"phase"`
	Settings      []domain.LogisticSettings `json:"settings"`
	Quote         *domain.PriceQuote        `json:"quote,omitempty"`
	Logistics     *domain.LogisticData      `json:"logistics,omitempty"`
	CostBreakdown *CostBreakdown            `json:"costBreakdown,omitempty"`
	CanQuote      bool                      `json:"canQuote"`
	CanLink       bool                      `json:"canLink"`
	Window        DeliveryWindow            `json:"deliveryWindow"`
}
