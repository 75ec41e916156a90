package models

import (
	"github.com/slipdesk/backend/internal/domain/images"
)

// SkuImageModel is the GORM model for the sku_images table
type SkuImageModel struct {
	BaseModel
	SKU      string `gorm:"type:varchar(128);not null;uniqueIndex:idx_sku_images_sku"`
	ImageURL string `gorm:"column:image_url;type:text;not null"`
}

// TableName returns the table name for SkuImageModel
func (SkuImageModel) TableName() string {
	return "sku_images"
}

// ToDomain converts SkuImageModel to domain SkuImage
func (m *SkuImageModel) ToDomain() *images.SkuImage {
	return &images.SkuImage{
		BaseEntity: m.BaseModel.ToDomain(),
		SKU:        m.SKU,
		ImageURL:   m.ImageURL,
	}
}

// SkuImageModelFromDomain creates a SkuImageModel from domain SkuImage
func SkuImageModelFromDomain(img *images.SkuImage) *SkuImageModel {
	model := &SkuImageModel{
		SKU:      img.SKU,
		ImageURL: img.ImageURL,
	}
	model.FromDomainBaseEntity(img.BaseEntity)
	return model
}
