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

// GormMappingPresetRepository implements slip.MappingPresetRepository using GORM
type GormMappingPresetRepository struct {
	db *gorm.DB
}

// NewGormMappingPresetRepository creates a new GormMappingPresetRepository
func NewGormMappingPresetRepository(db *gorm.DB) *GormMappingPresetRepository {
	return &GormMappingPresetRepository{db: db}
}

// FindByID finds a preset by ID
func (r *GormMappingPresetRepository) FindByID(ctx context.Context, id uuid.UUID) (*slip.MappingPreset, error) {
	var model models.MappingPresetModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByName finds a preset by its unique name
func (r *GormMappingPresetRepository) FindByName(ctx context.Context, name string) (*slip.MappingPreset, error) {
	var model models.MappingPresetModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns all presets ordered by name
func (r *GormMappingPresetRepository) FindAll(ctx context.Context) ([]slip.MappingPreset, error) {
	var presetModels []models.MappingPresetModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&presetModels).Error; err != nil {
		return nil, err
	}

	presets := make([]slip.MappingPreset, 0, len(presetModels))
	for _, model := range presetModels {
		preset, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		presets = append(presets, *preset)
	}
	return presets, nil
}

// Save saves a preset (insert or update)
func (r *GormMappingPresetRepository) Save(ctx context.Context, preset *slip.MappingPreset) error {
	model, err := models.MappingPresetModelFromDomain(preset)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a preset by ID
func (r *GormMappingPresetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MappingPresetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
