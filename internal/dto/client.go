package dto

import "github.com/JuanseMastrangelo/asset-movements-console/internal/core/domain"

// CreateClientRequest is the modal form of the client step.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// SelectClientRequest selects a listed client.
type SelectClientRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

// ListClientsParams is the optional name filter.
type ListClientsParams struct {
	Name string `form:"name"`
}

// ClientStepView is the client table plus the current selection.
type ClientStepView struct {
	Clients  []domain.Client `json:"clients"`
	Selected *domain.Client  `json:"selected,omitempty"`
}
