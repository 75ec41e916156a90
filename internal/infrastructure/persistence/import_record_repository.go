package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slipdesk/backend/internal/domain/shared"
	"github.com/slipdesk/backend/internal/domain/slip"
	"github.com/slipdesk/backend/internal/infrastructure/persistence/models"
)

// GormImportRecordRepository implements slip.ImportRecordRepository using GORM
type GormImportRecordRepository struct {
	db *gorm.DB
}

// NewGormImportRecordRepository creates a new GormImportRecordRepository
func NewGormImportRecordRepository(db *gorm.DB) *GormImportRecordRepository {
	return &GormImportRecordRepository{db: db}
}

// FindByID finds a record by ID
func (r *GormImportRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*slip.ImportRecord, error) {
	var model models.ImportRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRecent returns the most recent records, newest first
func (r *GormImportRecordRepository) FindRecent(ctx context.Context, limit int) ([]slip.ImportRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var recordModels []models.ImportRecordModel
	if err := r.db.WithContext(ctx).
		Order("completed_at DESC").
		Limit(limit).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]slip.ImportRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Save saves a record
func (r *GormImportRecordRepository) Save(ctx context.Context, record *slip.ImportRecord) error {
	return r.db.WithContext(ctx).Save(models.ImportRecordModelFromDomain(record)).Error
}

// Delete deletes a record by ID
func (r *GormImportRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ImportRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
