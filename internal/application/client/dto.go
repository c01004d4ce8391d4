package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tecpap/backend/internal/domain/client"
)

// ClientResponse represents a client identity in API responses
type ClientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Placeholder bool      `json:"placeholder"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain identity to a response DTO
func ToClientResponse(i *client.Identity) *ClientResponse {
	return &ClientResponse{
		ID:          i.ID,
		Name:        i.Name,
		Email:       i.Email,
		Phone:       i.Phone,
		Placeholder: i.Placeholder,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// PreferencesResponse summarises a client's ordering habits, derived from
// their most recent order. Used to prefill manual order entry.
type PreferencesResponse struct {
	ClientID        uuid.UUID        `json:"client_id"`
	ClientName      string           `json:"client_name"`
	LastOrderID     *uuid.UUID       `json:"last_order_id,omitempty"`
	LastArticleCode string           `json:"last_article_code,omitempty"`
	LastProductType string           `json:"last_product_type,omitempty"`
	LastQuantity    *decimal.Decimal `json:"last_quantity,omitempty"`
	LastUnit        string           `json:"last_unit,omitempty"`
	LastUnitPrice   *decimal.Decimal `json:"last_unit_price,omitempty"`
	LastCurrency    string           `json:"last_currency,omitempty"`
	OrderCount      int64            `json:"order_count"`

	FavoriteProductType string           `json:"favorite_product_type,omitempty"`
	AverageQuantity     *decimal.Decimal `json:"average_quantity,omitempty"`
}

// FuzzyMatchResponse reports the outcome of a fuzzy name lookup
type FuzzyMatchResponse struct {
	Client *ClientResponse `json:"client,omitempty"`
	Score  float64         `json:"score"`
	Found  bool            `json:"found"`
}
