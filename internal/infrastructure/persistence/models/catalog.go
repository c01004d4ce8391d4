package models

import (
	"github.com/tecpap/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for a catalog Product
type ProductModel struct {
	BaseModel
	Type        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Code        string `gorm:"type:varchar(20);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Type:        m.Type,
		Code:        m.Code,
		Description: m.Description,
	}
}

// FromDomain populates the model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Type = p.Type
	m.Code = p.Code
	m.Description = p.Description
}
