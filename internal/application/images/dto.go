package images

import (
	"time"

	"github.com/slipdesk/backend/internal/domain/images"
	"github.com/slipdesk/backend/internal/infrastructure/ingest"
)

// CreateSkuImageRequest is the request to associate an image with a SKU
type CreateSkuImageRequest struct {
	SKU      string `json:"sku" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required"`
}

// UpdateSkuImageRequest is the request to change an association's image URL
type UpdateSkuImageRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

// SkuImageResponse is the API representation of a SKU image association
type SkuImageResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListSkuImagesResponse is a list of associations with the total count
type ListSkuImagesResponse struct {
	Items []SkuImageResponse `json:"items"`
	Total int64              `json:"total"`
}

// ImportResult summarizes a bulk CSV import of SKU image associations
type ImportResult struct {
	TotalRows    int               `json:"totalRows"`
	ImportedRows int               `json:"importedRows"`
	ErrorRows    int               `json:"errorRows"`
	Errors       []ingest.RowError `json:"errors,omitempty"`
	IsTruncated  bool              `json:"isTruncated,omitempty"`
	TotalErrors  int               `json:"totalErrors,omitempty"`
}

func toSkuImageResponse(img *images.SkuImage) *SkuImageResponse {
	return &SkuImageResponse{
		ID:        img.ID.String(),
		SKU:       img.SKU,
		ImageURL:  img.ImageURL,
		CreatedAt: img.CreatedAt,
		UpdatedAt: img.UpdatedAt,
	}
}
