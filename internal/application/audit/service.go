package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tecpap/backend/internal/domain/audit"
)

// DefaultLimit bounds the audit trail read endpoint.
const DefaultLimit = 50

// EntryResponse represents an audit entry in API responses
type EntryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Action    string     `json:"action"`
	TableName string     `json:"table_name,omitempty"`
	RecordID  *uuid.UUID `json:"record_id,omitempty"`
	Details   string     `json:"details,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Service exposes the audit trail read surface
type Service struct {
	auditRepo audit.Repository
}

// NewService creates a new audit Service
func NewService(auditRepo audit.Repository) *Service {
	return &Service{auditRepo: auditRepo}
}

// Recent returns the newest audit entries, capped at the default limit when
// the caller asks for none or too many
func (s *Service) Recent(ctx context.Context, limit int) ([]*EntryResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = DefaultLimit
	}
	entries, err := s.auditRepo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*EntryResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		responses[i] = &EntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			TableName: e.TableName,
			RecordID:  e.RecordID,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		}
	}
	return responses, nil
}
