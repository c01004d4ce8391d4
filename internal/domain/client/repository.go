package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/tecpap/backend/internal/domain/shared"
)

// Repository defines the interface for client identity persistence
type Repository interface {
	// FindByID finds an identity by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Identity, error)

	// FindByNormalizedName finds an identity by its normalized name
	FindByNormalizedName(ctx context.Context, normalized string) (*Identity, error)

	// FindByPhone finds an identity by exact phone match
	FindByPhone(ctx context.Context, phone string) (*Identity, error)

	// FindByEmail finds an identity by exact email match
	FindByEmail(ctx context.Context, email string) (*Identity, error)

	// FindAll finds all identities matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Identity, error)

	// FindAllOrdered returns every identity in first-seen order. Fuzzy
	// matching depends on this ordering for deterministic tie-breaking.
	FindAllOrdered(ctx context.Context) ([]Identity, error)

	// Create inserts a new identity. A uniqueness violation on the
	// normalized name must surface as shared.ErrAlreadyExists so callers
	// can re-fetch the winning row.
	Create(ctx context.Context, identity *Identity) error

	// Save updates an existing identity
	Save(ctx context.Context, identity *Identity) error

	// Count counts identities matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
