package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/tecpap/backend/internal/domain/catalog"
)

// ProductResponse represents a catalog product in API responses
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
}

// Service exposes the read-only product catalog
type Service struct {
	catalogRepo catalog.Repository
}

// NewService creates a new catalog Service
func NewService(catalogRepo catalog.Repository) *Service {
	return &Service{catalogRepo: catalogRepo}
}

// List returns the full catalog
func (s *Service) List(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, len(products))
	for i := range products {
		p := &products[i]
		responses[i] = &ProductResponse{
			ID:          p.ID,
			Type:        p.Type,
			Code:        p.Code,
			Description: p.Description,
		}
	}
	return responses, nil
}
