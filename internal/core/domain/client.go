package domain

// Client is the counterparty of a transaction.
type Client struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Country  string `json:"country"`
	IsActive bool   `json:"isActive"`
}
