package images

import (
	"net/url"
	"strings"
	"time"

	"github.com/slipdesk/backend/internal/domain/shared"
)

const maxSKULength = 128

// SkuImage associates a product SKU (or seller SKU) with a product image
// URL shown on the packing slip.
type SkuImage struct {
	shared.BaseEntity
	SKU      string
	ImageURL string
}

// NewSkuImage creates a new SKU image association
func NewSkuImage(sku, imageURL string) (*SkuImage, error) {
	sku = strings.TrimSpace(sku)
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	imageURL = strings.TrimSpace(imageURL)
	if err := validateImageURL(imageURL); err != nil {
		return nil, err
	}

	return &SkuImage{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        sku,
		ImageURL:   imageURL,
	}, nil
}

// UpdateImageURL replaces the image URL
func (s *SkuImage) UpdateImageURL(imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if err := validateImageURL(imageURL); err != nil {
		return err
	}

	s.ImageURL = imageURL
	s.UpdatedAt = time.Now()

	return nil
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "sku must not be empty")
	}
	if len(sku) > maxSKULength {
		return shared.NewDomainError("INVALID_SKU", "sku too long")
	}
	return nil
}

func validateImageURL(imageURL string) error {
	if imageURL == "" {
		return shared.NewDomainError("INVALID_IMAGE_URL", "image url must not be empty")
	}
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewDomainError("INVALID_IMAGE_URL", "image url must be an absolute http(s) url")
	}
	return nil
}
