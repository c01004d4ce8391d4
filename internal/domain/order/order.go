package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tecpap/backend/internal/domain/shared"
)

// Status represents the validation state of a canonical order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusValidated Status = "validated"
	StatusRejected  Status = "rejected"
)

// DefaultCurrency is assumed when extraction found no currency.
const DefaultCurrency = "MAD"

// Order is the canonical, deduplicated order record bound to a resolved
// client identity. It is the aggregate root of the intake pipeline.
type Order struct {
	shared.BaseEntity
	OrderNumber       string
	ExternalMessageID string
	Channel           Channel

	ClientID  uuid.UUID
	ProductID *uuid.UUID

	ArticleCode   string
	ProductType   string
	ProductNature string

	Quantity           decimal.Decimal
	Unit               string
	QuantityDelivered  decimal.Decimal
	RemainingToDeliver decimal.Decimal

	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Currency   string

	OrderDate    string
	DeliveryDate string
	ExtraInfo    string

	SourceSubject string
	SourceFrom    string

	Confidence int
	Status     Status

	ReorderInferred  bool
	BackfilledFields string // comma-separated field names

	ValidatedAt *time.Time
	ValidatedBy string
}

// NewFromDraft builds a canonical order from an ingested draft bound to a
// resolved client. Derived quantities are computed here so the invariant
// remaining = ordered - delivered holds from creation.
func NewFromDraft(draft *Draft, clientID uuid.UUID, articleCode string, productID *uuid.UUID) *Order {
	o := &Order{
		BaseEntity:        shared.NewBaseEntity(),
		OrderNumber:       strings.TrimSpace(draft.OrderNumber),
		ExternalMessageID: strings.TrimSpace(draft.ExternalMessageID),
		Channel:           draft.Channel,
		ClientID:          clientID,
		ProductID:         productID,
		ArticleCode:       articleCode,
		ProductType:       draft.ProductType,
		ProductNature:     draft.ProductNature,
		Unit:              draft.Unit,
		Currency:          draft.Currency,
		OrderDate:         draft.OrderDate,
		DeliveryDate:      draft.DeliveryDate,
		ExtraInfo:         draft.ExtraInfo,
		SourceSubject:     draft.SourceSubject,
		SourceFrom:        draft.CustomerEmail,
		Confidence:        draft.Confidence,
		Status:            StatusPending,
		ReorderInferred:   draft.ReorderInferred,
		BackfilledFields:  strings.Join(draft.BackfilledFields, ","),
	}

	if o.Channel == "" {
		o.Channel = ChannelOther
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if draft.Quantity != nil {
		o.Quantity = *draft.Quantity
	}
	if draft.QuantityDelivered != nil {
		o.QuantityDelivered = *draft.QuantityDelivered
	}
	if draft.UnitPrice != nil {
		o.UnitPrice = *draft.UnitPrice
	}
	if draft.TotalPrice != nil {
		o.TotalPrice = *draft.TotalPrice
	}
	o.recomputeRemaining()

	return o
}

// SetQuantities updates the ordered and delivered quantities and re-derives
// the remaining quantity. Either argument may be nil to keep the current
// value.
func (o *Order) SetQuantities(ordered, delivered *decimal.Decimal) error {
	if ordered != nil {
		if ordered.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity cannot be negative")
		}
		o.Quantity = *ordered
	}
	if delivered != nil {
		if delivered.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Delivered quantity cannot be negative")
		}
		o.QuantityDelivered = *delivered
	}
	o.recomputeRemaining()
	o.Touch()
	return nil
}

// Validate marks the order as validated by the given reviewer.
func (o *Order) Validate(by string) error {
	if o.Status == StatusValidated {
		return shared.NewDomainError("ALREADY_VALIDATED", "Order is already validated")
	}
	now := time.Now()
	o.Status = StatusValidated
	o.ValidatedAt = &now
	o.ValidatedBy = by
	o.Touch()
	return nil
}

// Reject marks the order as rejected.
func (o *Order) Reject() error {
	if o.Status == StatusRejected {
		return shared.NewDomainError("ALREADY_REJECTED", "Order is already rejected")
	}
	o.Status = StatusRejected
	o.Touch()
	return nil
}

// BackfilledFieldList returns the recorded backfilled field names.
func (o *Order) BackfilledFieldList() []string {
	if o.BackfilledFields == "" {
		return nil
	}
	return strings.Split(o.BackfilledFields, ",")
}

func (o *Order) recomputeRemaining() {
	o.RemainingToDeliver = o.Quantity.Sub(o.QuantityDelivered)
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusValidated, StatusRejected:
		return true
	}
	return false
}
