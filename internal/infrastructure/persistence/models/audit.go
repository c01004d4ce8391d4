package models

import (
	"github.com/google/uuid"
	"github.com/tecpap/backend/internal/domain/audit"
)

// ActionLogModel is the persistence model for an audit Entry
type ActionLogModel struct {
	BaseModel
	Action    string     `gorm:"type:varchar(50);not null"`
	TableRef  string     `gorm:"column:table_name;type:varchar(100)"`
	RecordID  *uuid.UUID `gorm:"type:uuid;index"`
	Details   string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ActionLogModel) TableName() string {
	return "action_logs"
}

// ToDomain converts the model to a domain Entry
func (m *ActionLogModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		Action:     m.Action,
		TableName:  m.TableRef,
		RecordID:   m.RecordID,
		Details:    m.Details,
	}
}

// FromDomain populates the model from a domain Entry
func (m *ActionLogModel) FromDomain(e *audit.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Action = e.Action
	m.TableRef = e.TableName
	m.RecordID = e.RecordID
	m.Details = e.Details
}
