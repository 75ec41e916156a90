package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/slipdesk/backend/internal/domain/images"
	"github.com/slipdesk/backend/internal/domain/shared"
	"github.com/slipdesk/backend/internal/infrastructure/ingest"
)

const (
	skuColumn      = "sku"
	imageURLColumn = "imageUrl"
)

// SkuImageService manages the SKU to product image catalog used when
// packing slips are generated.
type SkuImageService struct {
	repo      images.SkuImageRepository
	maxErrors int
	logger    *zap.Logger
}

// NewSkuImageService creates a new SkuImageService
func NewSkuImageService(repo images.SkuImageRepository, maxErrors int, logger *zap.Logger) *SkuImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkuImageService{
		repo:      repo,
		maxErrors: maxErrors,
		logger:    logger,
	}
}

// Create associates an image URL with a SKU
func (s *SkuImageService) Create(ctx context.Context, req CreateSkuImageRequest) (*SkuImageResponse, error) {
	existing, err := s.repo.FindBySKU(ctx, strings.TrimSpace(req.SKU))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check SKU existence: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An image is already associated with this SKU")
	}

	img, err := images.NewSkuImage(req.SKU, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to save SKU image: %w", err)
	}

	s.logger.Info("sku image created",
		zap.String("id", img.ID.String()),
		zap.String("sku", img.SKU))

	return toSkuImageResponse(img), nil
}

// Get retrieves an association by ID
func (s *SkuImageService) Get(ctx context.Context, id uuid.UUID) (*SkuImageResponse, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "SKU image not found")
		}
		return nil, fmt.Errorf("failed to get SKU image: %w", err)
	}
	return toSkuImageResponse(img), nil
}

// List returns all associations with the total count
func (s *SkuImageService) List(ctx context.Context) (*ListSkuImagesResponse, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list SKU images: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count SKU images: %w", err)
	}

	items := make([]SkuImageResponse, len(all))
	for i := range all {
		items[i] = *toSkuImageResponse(&all[i])
	}

	return &ListSkuImagesResponse{Items: items, Total: total}, nil
}

// Update changes the image URL of an existing association
func (s *SkuImageService) Update(ctx context.Context, id uuid.UUID, req UpdateSkuImageRequest) (*SkuImageResponse, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "SKU image not found")
		}
		return nil, fmt.Errorf("failed to get SKU image: %w", err)
	}

	if err := img.UpdateImageURL(req.ImageURL); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to save SKU image: %w", err)
	}

	return toSkuImageResponse(img), nil
}

// Delete removes an association
func (s *SkuImageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "SKU image not found")
		}
		return fmt.Errorf("failed to delete SKU image: %w", err)
	}
	return nil
}

// validationRules returns the field rules for the bulk import CSV
func (s *SkuImageService) validationRules() []ingest.FieldRule {
	return []ingest.FieldRule{
		ingest.Field(skuColumn).Required().MaxLength(128).Unique().Build(),
		ingest.Field(imageURLColumn).Required().URL().Build(),
	}
}

// ImportCSV bulk-imports SKU image associations from a CSV file with the
// columns "sku" and "imageUrl". Existing SKUs are overwritten. Rows that
// fail validation are reported and skipped; valid rows are still imported.
func (s *SkuImageService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parser, err := ingest.NewCSVParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if !parser.HasHeader(skuColumn) || !parser.HasHeader(imageURLColumn) {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("CSV must have '%s' and '%s' columns", skuColumn, imageURLColumn))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}

	validator := ingest.NewFieldValidator(s.validationRules(), s.maxErrors)
	result := &ImportResult{TotalRows: len(rows)}

	batch := make([]*images.SkuImage, 0, len(rows))
	for _, row := range rows {
		if !validator.ValidateRow(row) {
			result.ErrorRows++
			continue
		}

		img, err := images.NewSkuImage(row.Get(skuColumn), row.Get(imageURLColumn))
		if err != nil {
			validator.Errors().Add(ingest.NewRowError(row.LineNumber, skuColumn,
				ingest.ErrCodeIngestInvalidFormat, err.Error()))
			result.ErrorRows++
			continue
		}
		batch = append(batch, img)
	}

	if len(batch) > 0 {
		if err := s.repo.SaveAll(ctx, batch); err != nil {
			return nil, fmt.Errorf("failed to save SKU images: %w", err)
		}
	}

	result.ImportedRows = len(batch)
	result.Errors = validator.Errors().Errors()
	result.IsTruncated = validator.Errors().IsTruncated()
	result.TotalErrors = validator.Errors().TotalCount()

	s.logger.Info("sku image import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("errors", result.ErrorRows))

	return result, nil
}

// Index returns the SKU to image URL lookup used during packing slip
// aggregation.
func (s *SkuImageService) Index(ctx context.Context) (map[string]string, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load SKU images: %w", err)
	}

	index := make(map[string]string, len(all))
	for i := range all {
		index[all[i].SKU] = all[i].ImageURL
	}
	return index, nil
}
