package catalog

import (
	"context"
	"strings"

	"github.com/tecpap/backend/internal/domain/shared"
)

// Product is a catalogued bag type the plant manufactures. The catalog is
// small and fixed; drafts reference products by fuzzy type match.
type Product struct {
	shared.BaseEntity
	Type        string
	Code        string
	Description string
}

// DefaultCatalog returns the four manufactured bag types seeded at startup.
func DefaultCatalog() []Product {
	entries := []struct {
		Type        string
		Code        string
		Description string
	}{
		{"Sachets fond plat", "SFP", "Sachets à fond plat pour sandwichs, tacos, viennoiseries"},
		{"Sac fond carré sans poignées", "SFCSP", "Sacs fond carré sans poignées - emballage standard"},
		{"Sac fond carré avec poignées plates", "SFCPP", "Sacs fond carré avec poignées plates - shopping"},
		{"Sac fond carré avec poignées torsadées", "SFCPT", "Sacs fond carré avec poignées torsadées - premium"},
	}

	products := make([]Product, len(entries))
	for i, e := range entries {
		products[i] = Product{
			BaseEntity:  shared.NewBaseEntity(),
			Type:        e.Type,
			Code:        e.Code,
			Description: e.Description,
		}
	}
	return products
}

// Matches reports whether a draft's product type string refers to this
// product (case-insensitive containment, either direction).
func (p *Product) Matches(typeName string) bool {
	if typeName == "" {
		return false
	}
	a := strings.ToLower(p.Type)
	b := strings.ToLower(strings.TrimSpace(typeName))
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Repository defines the interface for product catalog persistence
type Repository interface {
	// FindAll returns the full catalog
	FindAll(ctx context.Context) ([]Product, error)

	// FindByTypeLike finds the first product whose type matches the given
	// name, case-insensitively
	FindByTypeLike(ctx context.Context, typeName string) (*Product, error)

	// Seed inserts catalog entries that do not exist yet
	Seed(ctx context.Context, products []Product) error
}
