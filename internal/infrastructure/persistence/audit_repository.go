package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/tecpap/backend/internal/domain/audit"
	"github.com/tecpap/backend/internal/infrastructure/persistence/models"
)

// GormAuditRepository implements audit.Repository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append stores a new entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	var model models.ActionLogModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Recent returns the most recent entries, newest first
func (r *GormAuditRepository) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	var entryModels []models.ActionLogModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, nil
}
