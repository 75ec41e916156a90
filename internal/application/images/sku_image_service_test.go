package images_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slipdesk/backend/internal/application/images"
	domain "github.com/slipdesk/backend/internal/domain/images"
	"github.com/slipdesk/backend/internal/domain/shared"
)

type MockSkuImageRepository struct {
	mock.Mock
}

func (m *MockSkuImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SkuImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkuImage), args.Error(1)
}

func (m *MockSkuImageRepository) FindBySKU(ctx context.Context, sku string) (*domain.SkuImage, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkuImage), args.Error(1)
}

func (m *MockSkuImageRepository) FindAll(ctx context.Context) ([]domain.SkuImage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkuImage), args.Error(1)
}

func (m *MockSkuImageRepository) Save(ctx context.Context, image *domain.SkuImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockSkuImageRepository) SaveAll(ctx context.Context, batch []*domain.SkuImage) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockSkuImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSkuImageRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func mustSkuImage(t *testing.T, sku, url string) *domain.SkuImage {
	t.Helper()
	img, err := domain.NewSkuImage(sku, url)
	require.NoError(t, err)
	return img
}

func TestSkuImageService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new association", func(t *testing.T) {
		repo := new(MockSkuImageRepository)
		repo.On("FindBySKU", ctx, "SKU-1").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*images.SkuImage")).Return(nil)

		svc := images.NewSkuImageService(repo, 100, nil)
		resp, err := svc.Create(ctx, images.CreateSkuImageRequest{
			SKU:      "SKU-1",
			ImageURL: "https://cdn.example.com/a.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "SKU-1", resp.SKU)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		repo := new(MockSkuImageRepository)
		repo.On("FindBySKU", ctx, "SKU-1").
			Return(mustSkuImage(t, "SKU-1", "https://cdn.example.com/a.png"), nil)

		svc := images.NewSkuImageService(repo, 100, nil)
		_, err := svc.Create(ctx, images.CreateSkuImageRequest{
			SKU:      "SKU-1",
			ImageURL: "https://cdn.example.com/b.png",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects invalid URL", func(t *testing.T) {
		repo := new(MockSkuImageRepository)
		repo.On("FindBySKU", ctx, "SKU-1").Return(nil, shared.ErrNotFound)

		svc := images.NewSkuImageService(repo, 100, nil)
		_, err := svc.Create(ctx, images.CreateSkuImageRequest{
			SKU:      "SKU-1",
			ImageURL: "not-a-url",
		})
		assert.Error(t, err)
	})
}

func TestSkuImageService_Update(t *testing.T) {
	ctx := context.Background()
	img := mustSkuImage(t, "SKU-1", "https://cdn.example.com/a.png")

	repo := new(MockSkuImageRepository)
	repo.On("FindByID", ctx, img.ID).Return(img, nil)
	repo.On("Save", ctx, img).Return(nil)

	svc := images.NewSkuImageService(repo, 100, nil)
	resp, err := svc.Update(ctx, img.ID, images.UpdateSkuImageRequest{
		ImageURL: "https://cdn.example.com/b.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/b.png", resp.ImageURL)
}

func TestSkuImageService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	repo := new(MockSkuImageRepository)
	repo.On("Delete", ctx, id).Return(shared.ErrNotFound)

	svc := images.NewSkuImageService(repo, 100, nil)
	err := svc.Delete(ctx, id)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestSkuImageService_ImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("imports valid rows and reports invalid ones", func(t *testing.T) {
		csv := "sku,imageUrl\n" +
			"SKU-1,https://cdn.example.com/a.png\n" +
			"SKU-2,not-a-url\n" +
			"SKU-3,https://cdn.example.com/c.png\n"

		repo := new(MockSkuImageRepository)
		repo.On("SaveAll", ctx, mock.MatchedBy(func(batch []*domain.SkuImage) bool {
			return len(batch) == 2
		})).Return(nil)

		svc := images.NewSkuImageService(repo, 100, nil)
		result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 2, result.ImportedRows)
		assert.Equal(t, 1, result.ErrorRows)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "imageUrl", result.Errors[0].Column)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKUs within the file", func(t *testing.T) {
		csv := "sku,imageUrl\n" +
			"SKU-1,https://cdn.example.com/a.png\n" +
			"sku-1,https://cdn.example.com/b.png\n"

		repo := new(MockSkuImageRepository)
		repo.On("SaveAll", ctx, mock.MatchedBy(func(batch []*domain.SkuImage) bool {
			return len(batch) == 1
		})).Return(nil)

		svc := images.NewSkuImageService(repo, 100, nil)
		result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 1, result.ImportedRows)
		assert.Equal(t, 1, result.ErrorRows)
	})

	t.Run("rejects file missing required columns", func(t *testing.T) {
		repo := new(MockSkuImageRepository)
		svc := images.NewSkuImageService(repo, 100, nil)

		_, err := svc.ImportCSV(ctx, strings.NewReader("sku,url\nSKU-1,https://x.example.com/a.png\n"))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestSkuImageService_Index(t *testing.T) {
	ctx := context.Background()

	a := mustSkuImage(t, "SKU-1", "https://cdn.example.com/a.png")
	b := mustSkuImage(t, "SKU-2", "https://cdn.example.com/b.png")

	repo := new(MockSkuImageRepository)
	repo.On("FindAll", ctx).Return([]domain.SkuImage{*a, *b}, nil)

	svc := images.NewSkuImageService(repo, 100, nil)
	index, err := svc.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SKU-1": "https://cdn.example.com/a.png",
		"SKU-2": "https://cdn.example.com/b.png",
	}, index)
}
