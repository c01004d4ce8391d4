package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/tecpap/backend/internal/domain/shared"
)

// Entry is a single audit trail record. Every create, update, and status
// change in the intake pipeline appends one.
type Entry struct {
	shared.BaseEntity
	Action    string
	TableName string
	RecordID  *uuid.UUID
	Details   string
}

// NewEntry creates an audit entry for an action on a record.
func NewEntry(action, table string, recordID *uuid.UUID, details string) *Entry {
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Action:     action,
		TableName:  table,
		RecordID:   recordID,
		Details:    details,
	}
}

// Repository defines the interface for audit log persistence
type Repository interface {
	// Append stores a new entry
	Append(ctx context.Context, entry *Entry) error

	// Recent returns the most recent entries, newest first
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
