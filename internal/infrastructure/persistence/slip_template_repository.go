package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slipdesk/backend/internal/domain/printing"
	"github.com/slipdesk/backend/internal/domain/shared"
	"github.com/slipdesk/backend/internal/infrastructure/persistence/models"
)

// GormSlipTemplateRepository implements printing.SlipTemplateRepository using GORM
type GormSlipTemplateRepository struct {
	db *gorm.DB
}

// NewGormSlipTemplateRepository creates a new GormSlipTemplateRepository
func NewGormSlipTemplateRepository(db *gorm.DB) *GormSlipTemplateRepository {
	return &GormSlipTemplateRepository{db: db}
}

// FindByID finds a template by ID
func (r *GormSlipTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*printing.SlipTemplate, error) {
	var model models.SlipTemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a template by its unique name
func (r *GormSlipTemplateRepository) FindByName(ctx context.Context, name string) (*printing.SlipTemplate, error) {
	var model models.SlipTemplateModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all templates, default first
func (r *GormSlipTemplateRepository) FindAll(ctx context.Context) ([]printing.SlipTemplate, error) {
	var templateModels []models.SlipTemplateModel
	if err := r.db.WithContext(ctx).
		Order("is_default DESC, name ASC").
		Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]printing.SlipTemplate, len(templateModels))
	for i, model := range templateModels {
		templates[i] = *model.ToDomain()
	}
	return templates, nil
}

// FindDefault returns the default template, or nil when none is set
func (r *GormSlipTemplateRepository) FindDefault(ctx context.Context) (*printing.SlipTemplate, error) {
	var model models.SlipTemplateModel
	if err := r.db.WithContext(ctx).
		Where("is_default = ? AND status = ?", true, string(printing.TemplateStatusActive)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save saves a template (insert or update)
func (r *GormSlipTemplateRepository) Save(ctx context.Context, template *printing.SlipTemplate) error {
	model := models.SlipTemplateModelFromDomain(template)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a template by ID
func (r *GormSlipTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SlipTemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearDefault clears the default flag on all templates
func (r *GormSlipTemplateRepository) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.SlipTemplateModel{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}
