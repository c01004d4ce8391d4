package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecpap/backend/internal/domain/order"
)

// OrderModel is the persistence model for the canonical Order aggregate.
// order_number and external_message_id carry partial unique indexes (null
// and empty values excluded) declared in the migrations; insert conflicts
// on either are how the dedup gate detects a replay.
type OrderModel struct {
	BaseModel
	OrderNumber       *string `gorm:"type:varchar(100)"`
	ExternalMessageID *string `gorm:"type:varchar(200)"`
	Channel           string  `gorm:"type:varchar(20);not null;default:'other'"`

	ClientID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID `gorm:"type:uuid;index"`

	ArticleCode   string `gorm:"type:varchar(50)"`
	ProductType   string `gorm:"type:varchar(200)"`
	ProductNature string `gorm:"type:text"`

	Quantity           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit               string          `gorm:"type:varchar(50)"`
	QuantityDelivered  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingToDeliver decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency   string          `gorm:"type:varchar(10);not null;default:'MAD'"`

	OrderDate    string `gorm:"type:varchar(50)"`
	DeliveryDate string `gorm:"type:varchar(50)"`
	ExtraInfo    string `gorm:"type:text"`

	SourceSubject string `gorm:"type:varchar(500)"`
	SourceFrom    string `gorm:"type:varchar(200)"`

	Confidence int    `gorm:"not null;default:0"`
	Status     string `gorm:"type:varchar(20);not null;default:'pending';index"`

	ReorderInferred  bool   `gorm:"not null;default:false"`
	BackfilledFields string `gorm:"type:text"`

	ValidatedAt *time.Time
	ValidatedBy string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	return &order.Order{
		BaseEntity:         m.BaseModel.ToDomain(),
		OrderNumber:        derefString(m.OrderNumber),
		ExternalMessageID:  derefString(m.ExternalMessageID),
		Channel:            order.Channel(m.Channel),
		ClientID:           m.ClientID,
		ProductID:          m.ProductID,
		ArticleCode:        m.ArticleCode,
		ProductType:        m.ProductType,
		ProductNature:      m.ProductNature,
		Quantity:           m.Quantity,
		Unit:               m.Unit,
		QuantityDelivered:  m.QuantityDelivered,
		RemainingToDeliver: m.RemainingToDeliver,
		UnitPrice:          m.UnitPrice,
		TotalPrice:         m.TotalPrice,
		Currency:           m.Currency,
		OrderDate:          m.OrderDate,
		DeliveryDate:       m.DeliveryDate,
		ExtraInfo:          m.ExtraInfo,
		SourceSubject:      m.SourceSubject,
		SourceFrom:         m.SourceFrom,
		Confidence:         m.Confidence,
		Status:             order.Status(m.Status),
		ReorderInferred:    m.ReorderInferred,
		BackfilledFields:   m.BackfilledFields,
		ValidatedAt:        m.ValidatedAt,
		ValidatedBy:        m.ValidatedBy,
	}
}

// FromDomain populates the model from a domain Order. Empty idempotency
// keys are stored as NULL so the partial unique indexes ignore them.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.OrderNumber = nilIfEmpty(o.OrderNumber)
	m.ExternalMessageID = nilIfEmpty(o.ExternalMessageID)
	m.Channel = string(o.Channel)
	m.ClientID = o.ClientID
	m.ProductID = o.ProductID
	m.ArticleCode = o.ArticleCode
	m.ProductType = o.ProductType
	m.ProductNature = o.ProductNature
	m.Quantity = o.Quantity
	m.Unit = o.Unit
	m.QuantityDelivered = o.QuantityDelivered
	m.RemainingToDeliver = o.RemainingToDeliver
	m.UnitPrice = o.UnitPrice
	m.TotalPrice = o.TotalPrice
	m.Currency = o.Currency
	m.OrderDate = o.OrderDate
	m.DeliveryDate = o.DeliveryDate
	m.ExtraInfo = o.ExtraInfo
	m.SourceSubject = o.SourceSubject
	m.SourceFrom = o.SourceFrom
	m.Confidence = o.Confidence
	m.Status = string(o.Status)
	m.ReorderInferred = o.ReorderInferred
	m.BackfilledFields = o.BackfilledFields
	m.ValidatedAt = o.ValidatedAt
	m.ValidatedBy = o.ValidatedBy
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
