package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecpap/backend/internal/domain/order"
)

// UpdateOrderRequest represents a partial update of an order's fields.
// Pointer fields distinguish "not sent" from "set to zero".
type UpdateOrderRequest struct {
	ArticleCode   *string `json:"code_article" binding:"omitempty,max=50,articlecode"`
	ProductType   *string `json:"type_produit" binding:"omitempty,max=200"`
	ProductNature *string `json:"nature_produit"`

	Quantity          *decimal.Decimal `json:"quantite"`
	Unit              *string          `json:"unite" binding:"omitempty,max=50"`
	QuantityDelivered *decimal.Decimal `json:"quantite_livree"`

	UnitPrice  *decimal.Decimal `json:"prix_unitaire"`
	TotalPrice *decimal.Decimal `json:"prix_total"`
	Currency   *string          `json:"devise" binding:"omitempty,max=10"`

	OrderDate    *string `json:"date_commande" binding:"omitempty,max=50"`
	DeliveryDate *string `json:"date_livraison" binding:"omitempty,max=50"`
	ExtraInfo    *string `json:"informations_supplementaires"`
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required,oneof=pending validated rejected"`
	ValidatedBy string `json:"validated_by" binding:"max=100"`
}

// OrderResponse represents a canonical order in API responses
type OrderResponse struct {
	ID                uuid.UUID  `json:"id"`
	OrderNumber       string     `json:"order_number,omitempty"`
	ExternalMessageID string     `json:"external_message_id,omitempty"`
	Channel           string     `json:"channel"`
	ClientID          uuid.UUID  `json:"client_id"`
	ProductID         *uuid.UUID `json:"product_id,omitempty"`

	ArticleCode   string `json:"article_code,omitempty"`
	ProductType   string `json:"product_type,omitempty"`
	ProductNature string `json:"product_nature,omitempty"`

	Quantity           decimal.Decimal `json:"quantity"`
	Unit               string          `json:"unit,omitempty"`
	QuantityDelivered  decimal.Decimal `json:"quantity_delivered"`
	RemainingToDeliver decimal.Decimal `json:"remaining_to_deliver"`

	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`

	OrderDate    string `json:"order_date,omitempty"`
	DeliveryDate string `json:"delivery_date,omitempty"`
	ExtraInfo    string `json:"extra_info,omitempty"`

	SourceSubject string `json:"source_subject,omitempty"`
	SourceFrom    string `json:"source_from,omitempty"`

	Confidence       int      `json:"confidence"`
	Status           string   `json:"status"`
	ReorderInferred  bool     `json:"reorder_inferred"`
	BackfilledFields []string `json:"backfilled_fields,omitempty"`

	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	ValidatedBy string     `json:"validated_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		ExternalMessageID:  o.ExternalMessageID,
		Channel:            string(o.Channel),
		ClientID:           o.ClientID,
		ProductID:          o.ProductID,
		ArticleCode:        o.ArticleCode,
		ProductType:        o.ProductType,
		ProductNature:      o.ProductNature,
		Quantity:           o.Quantity,
		Unit:               o.Unit,
		QuantityDelivered:  o.QuantityDelivered,
		RemainingToDeliver: o.RemainingToDeliver,
		UnitPrice:          o.UnitPrice,
		TotalPrice:         o.TotalPrice,
		Currency:           o.Currency,
		OrderDate:          o.OrderDate,
		DeliveryDate:       o.DeliveryDate,
		ExtraInfo:          o.ExtraInfo,
		SourceSubject:      o.SourceSubject,
		SourceFrom:         o.SourceFrom,
		Confidence:         o.Confidence,
		Status:             string(o.Status),
		ReorderInferred:    o.ReorderInferred,
		BackfilledFields:   o.BackfilledFieldList(),
		ValidatedAt:        o.ValidatedAt,
		ValidatedBy:        o.ValidatedBy,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
