package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/slipdesk/backend/internal/domain/images"
	"github.com/slipdesk/backend/internal/domain/shared"
	"github.com/slipdesk/backend/internal/infrastructure/persistence/models"
)

// GormSkuImageRepository implements images.SkuImageRepository using GORM
type GormSkuImageRepository struct {
	db *gorm.DB
}

// NewGormSkuImageRepository creates a new GormSkuImageRepository
func NewGormSkuImageRepository(db *gorm.DB) *GormSkuImageRepository {
	return &GormSkuImageRepository{db: db}
}

// FindByID finds an association by ID
func (r *GormSkuImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*images.SkuImage, error) {
	var model models.SkuImageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds an association by SKU, case-insensitive
func (r *GormSkuImageRepository) FindBySKU(ctx context.Context, sku string) (*images.SkuImage, error) {
	var model models.SkuImageModel
	if err := r.db.WithContext(ctx).
		Where("sku = ? COLLATE NOCASE", sku).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all associations ordered by SKU
func (r *GormSkuImageRepository) FindAll(ctx context.Context) ([]images.SkuImage, error) {
	var imageModels []models.SkuImageModel
	if err := r.db.WithContext(ctx).Order("sku ASC").Find(&imageModels).Error; err != nil {
		return nil, err
	}

	result := make([]images.SkuImage, len(imageModels))
	for i, model := range imageModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// Save saves an association (insert or update by SKU)
func (r *GormSkuImageRepository) Save(ctx context.Context, image *images.SkuImage) error {
	model := models.SkuImageModelFromDomain(image)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{"image_url", "updated_at"}),
		}).
		Create(model).Error
}

// SaveAll saves a batch of associations in one transaction
func (r *GormSkuImageRepository) SaveAll(ctx context.Context, imgs []*images.SkuImage) error {
	if len(imgs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, img := range imgs {
			model := models.SkuImageModelFromDomain(img)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "sku"}},
				DoUpdates: clause.AssignmentColumns([]string{"image_url", "updated_at"}),
			}).Create(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes an association by ID
func (r *GormSkuImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SkuImageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of associations
func (r *GormSkuImageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SkuImageModel{}).Count(&count).Error
	return count, err
}
