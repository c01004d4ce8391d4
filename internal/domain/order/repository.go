package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tecpap/backend/internal/domain/shared"
)

// Stats aggregates order counts and revenue for the dashboard boundary.
type Stats struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	ValidatedOrders int64           `json:"validated_orders"`
	RejectedOrders  int64           `json:"rejected_orders"`
	TotalClients    int64           `json:"total_clients"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}

// Repository defines the interface for canonical order persistence
type Repository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its business order number
	FindByOrderNumber(ctx context.Context, number string) (*Order, error)

	// FindByExternalMessageID finds an order by its channel message key
	FindByExternalMessageID(ctx context.Context, messageID string) (*Order, error)

	// FindAll finds orders matching the filter, newest first by default
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByClient finds all orders for a client, newest first
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Order, error)

	// FindLatestByClient returns the client's most recent order, optionally
	// restricted to validated orders. Returns shared.ErrNotFound when the
	// client has no matching history.
	FindLatestByClient(ctx context.Context, clientID uuid.UUID, onlyValidated bool) (*Order, error)

	// Create inserts a new order. A uniqueness violation on either
	// idempotency key must surface as shared.ErrAlreadyExists so the gate
	// can re-fetch the winning row instead of failing.
	Create(ctx context.Context, o *Order) error

	// Save updates an existing order
	Save(ctx context.Context, o *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Stats returns dashboard aggregates
	Stats(ctx context.Context) (Stats, error)
}
