package images

import (
	"context"

	"github.com/google/uuid"
)

// SkuImageRepository defines the interface for SKU image persistence
type SkuImageRepository interface {
	// FindByID finds an association by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SkuImage, error)

	// FindBySKU finds an association by SKU (case-insensitive)
	FindBySKU(ctx context.Context, sku string) (*SkuImage, error)

	// FindAll returns all associations
	FindAll(ctx context.Context) ([]SkuImage, error)

	// Save saves an association (insert or update)
	Save(ctx context.Context, image *SkuImage) error

	// SaveAll saves a batch of associations in one transaction
	SaveAll(ctx context.Context, images []*SkuImage) error

	// Delete deletes an association by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of associations
	Count(ctx context.Context) (int64, error)
}
