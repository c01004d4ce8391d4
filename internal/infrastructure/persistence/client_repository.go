package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tecpap/backend/internal/domain/client"
	"github.com/tecpap/backend/internal/domain/shared"
	"github.com/tecpap/backend/internal/infrastructure/persistence/models"
)

// GormClientRepository implements client.Repository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds an identity by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Identity, error) {
	var model models.ClientIdentityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNormalizedName finds an identity by its normalized name
func (r *GormClientRepository) FindByNormalizedName(ctx context.Context, normalized string) (*client.Identity, error) {
	if normalized == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ClientIdentityModel
	if err := r.db.WithContext(ctx).
		Where("name_normalized = ?", normalized).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds an identity by exact phone match
func (r *GormClientRepository) FindByPhone(ctx context.Context, phone string) (*client.Identity, error) {
	if phone == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ClientIdentityModel
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an identity by exact email match
func (r *GormClientRepository) FindByEmail(ctx context.Context, email string) (*client.Identity, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	var model models.ClientIdentityModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all identities matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Identity, error) {
	var identityModels []models.ClientIdentityModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.ClientIdentityModel{}), filter)

	if filter.Search != "" {
		query = query.Where("name_normalized LIKE ?", "%"+client.NormalizeName(filter.Search)+"%")
	}

	if err := query.Find(&identityModels).Error; err != nil {
		return nil, err
	}

	identities := make([]client.Identity, len(identityModels))
	for i := range identityModels {
		identities[i] = *identityModels[i].ToDomain()
	}
	return identities, nil
}

// FindAllOrdered returns every identity in first-seen order
func (r *GormClientRepository) FindAllOrdered(ctx context.Context) ([]client.Identity, error) {
	var identityModels []models.ClientIdentityModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&identityModels).Error; err != nil {
		return nil, err
	}

	identities := make([]client.Identity, len(identityModels))
	for i := range identityModels {
		identities[i] = *identityModels[i].ToDomain()
	}
	return identities, nil
}

// Create inserts a new identity. A unique index violation on the normalized
// name surfaces as shared.ErrAlreadyExists.
func (r *GormClientRepository) Create(ctx context.Context, identity *client.Identity) error {
	var model models.ClientIdentityModel
	model.FromDomain(identity)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates an existing identity
func (r *GormClientRepository) Save(ctx context.Context, identity *client.Identity) error {
	var model models.ClientIdentityModel
	model.FromDomain(identity)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Count counts identities matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ClientIdentityModel{})
	if filter.Search != "" {
		query = query.Where("name_normalized LIKE ?", "%"+client.NormalizeName(filter.Search)+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
