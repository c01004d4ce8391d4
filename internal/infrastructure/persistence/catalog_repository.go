package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tecpap/backend/internal/domain/catalog"
	"github.com/tecpap/backend/internal/domain/shared"
	"github.com/tecpap/backend/internal/infrastructure/persistence/models"
)

// GormCatalogRepository implements catalog.Repository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindAll returns the full catalog
func (r *GormCatalogRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Order("type ASC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products, nil
}

// FindByTypeLike finds the first product whose type matches the given name,
// case-insensitively and in either containment direction.
func (r *GormCatalogRepository) FindByTypeLike(ctx context.Context, typeName string) (*catalog.Product, error) {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return nil, shared.ErrNotFound
	}

	var model models.ProductModel
	err := r.db.WithContext(ctx).
		Where("type ILIKE ? OR ? ILIKE '%' || type || '%'", "%"+typeName+"%", typeName).
		Order("type ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Seed inserts catalog entries that do not exist yet. Existing types are
// left untouched so re-running startup is harmless.
func (r *GormCatalogRepository) Seed(ctx context.Context, products []catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	productModels := make([]models.ProductModel, len(products))
	for i := range products {
		productModels[i].FromDomain(&products[i])
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}},
			DoNothing: true,
		}).
		Create(&productModels).Error
}
