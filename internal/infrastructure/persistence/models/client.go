package models

import (
	"github.com/tecpap/backend/internal/domain/client"
)

// ClientIdentityModel is the persistence model for the client Identity
// domain entity. The partial unique index on name_normalized (placeholder
// rows excluded) lives in the migrations; it is what closes the identity
// creation race.
type ClientIdentityModel struct {
	BaseModel
	Name           string `gorm:"type:varchar(200);not null"`
	NameNormalized string `gorm:"type:varchar(200);not null;index"`
	Email          string `gorm:"type:varchar(200);index"`
	Phone          string `gorm:"type:varchar(50);index"`
	Placeholder    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ClientIdentityModel) TableName() string {
	return "client_identities"
}

// ToDomain converts the model to a domain Identity
func (m *ClientIdentityModel) ToDomain() *client.Identity {
	return &client.Identity{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		NameNormalized: m.NameNormalized,
		Email:          m.Email,
		Phone:          m.Phone,
		Placeholder:    m.Placeholder,
	}
}

// FromDomain populates the model from a domain Identity
func (m *ClientIdentityModel) FromDomain(i *client.Identity) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.Name = i.Name
	m.NameNormalized = i.NameNormalized
	m.Email = i.Email
	m.Phone = i.Phone
	m.Placeholder = i.Placeholder
}
