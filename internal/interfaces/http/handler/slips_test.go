package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slipdesk/backend/internal/application/slips"
	"github.com/slipdesk/backend/internal/domain/shared"
	"github.com/slipdesk/backend/internal/domain/slip"
	"github.com/slipdesk/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPresetRepository implements slip.MappingPresetRepository for testing
type MockPresetRepository struct {
	mock.Mock
}

func (m *MockPresetRepository) FindByID(ctx context.Context, id uuid.UUID) (*slip.MappingPreset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slip.MappingPreset), args.Error(1)
}

func (m *MockPresetRepository) FindByName(ctx context.Context, name string) (*slip.MappingPreset, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slip.MappingPreset), args.Error(1)
}

func (m *MockPresetRepository) FindAll(ctx context.Context) ([]slip.MappingPreset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]slip.MappingPreset), args.Error(1)
}

func (m *MockPresetRepository) Save(ctx context.Context, preset *slip.MappingPreset) error {
	args := m.Called(ctx, preset)
	return args.Error(0)
}

func (m *MockPresetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecordRepository implements slip.ImportRecordRepository for testing
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*slip.ImportRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slip.ImportRecord), args.Error(1)
}

func (m *MockRecordRepository) FindRecent(ctx context.Context, limit int) ([]slip.ImportRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]slip.ImportRecord), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, record *slip.ImportRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testOrdersCSV = "Order ID,Buyer Username,Item,SKU,Qty,Weight\n" +
	"X1,jane,Widget,SKU-1,2,1.5\n" +
	"X1,jane,Gadget,SKU-2,1,1\n" +
	"X2,bob,Widget,SKU-1,1,1.5\n"

func newSlipRouter(presetRepo *MockPresetRepository, recordRepo *MockRecordRepository) *gin.Engine {
	service := slips.NewProcessService(presetRepo, recordRepo, nil, nil)
	engine := gin.New()
	NewSlipHandler(service).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func uploadRequest(t *testing.T, url, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSlipHandler_Process(t *testing.T) {
	t.Run("processes an upload into documents", func(t *testing.T) {
		presetRepo := new(MockPresetRepository)
		recordRepo := new(MockRecordRepository)
		recordRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		router := newSlipRouter(presetRepo, recordRepo)

		req := uploadRequest(t, "/api/v1/slips/process", "orders.csv", testOrdersCSV, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Success bool                  `json:"success"`
			Data    slips.ProcessResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Len(t, resp.Data.Documents, 2)
		assert.NotEmpty(t, resp.Data.RecordID)
		recordRepo.AssertExpectations(t)
	})

	t.Run("missing file returns 400", func(t *testing.T) {
		router := newSlipRouter(new(MockPresetRepository), new(MockRecordRepository))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/slips/process", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "file is required")
	})

	t.Run("multi-character delimiter returns 400", func(t *testing.T) {
		router := newSlipRouter(new(MockPresetRepository), new(MockRecordRepository))

		req := uploadRequest(t, "/api/v1/slips/process", "orders.csv", testOrdersCSV,
			map[string]string{"delimiter": ";;"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid mapping JSON returns 400", func(t *testing.T) {
		router := newSlipRouter(new(MockPresetRepository), new(MockRecordRepository))

		req := uploadRequest(t, "/api/v1/slips/process", "orders.csv", testOrdersCSV,
			map[string]string{"mapping": "not json"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty file is a 400 file error", func(t *testing.T) {
		router := newSlipRouter(new(MockPresetRepository), new(MockRecordRepository))

		req := uploadRequest(t, "/api/v1/slips/process", "orders.csv", "", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidFile)
	})

	t.Run("header-only file is a 400 file error", func(t *testing.T) {
		presetRepo := new(MockPresetRepository)
		recordRepo := new(MockRecordRepository)
		recordRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		router := newSlipRouter(presetRepo, recordRepo)

		req := uploadRequest(t, "/api/v1/slips/process", "orders.csv",
			"Order ID,Buyer Username,Item\n", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidFile)
	})

	t.Run("unknown preset returns 404", func(t *testing.T) {
		presetRepo := new(MockPresetRepository)
		presetRepo.On("FindByName", mock.Anything, "missing").Return(nil, shared.ErrNotFound)
		recordRepo := new(MockRecordRepository)

		router := newSlipRouter(presetRepo, recordRepo)

		req := uploadRequest(t, "/api/v1/slips/process", "orders.csv", testOrdersCSV,
			map[string]string{"preset": "missing"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSlipHandler_Preview(t *testing.T) {
	router := newSlipRouter(new(MockPresetRepository), new(MockRecordRepository))

	req := uploadRequest(t, "/api/v1/slips/preview", "orders.csv", testOrdersCSV, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data slips.PreviewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Order ID", "Buyer Username", "Item", "SKU", "Qty", "Weight"}, resp.Data.Headers)
	assert.Equal(t, "Order ID", resp.Data.Mapping["orderId"])
	assert.Len(t, resp.Data.SampleRows, 3)
	assert.Equal(t, 3, resp.Data.TotalRows)
}

func TestSlipHandler_Export(t *testing.T) {
	router := newSlipRouter(new(MockPresetRepository), new(MockRecordRepository))

	doc := &slip.Document{
		OrderNumber: "X1",
		Customer:    slip.Customer{Name: "jane"},
		Items: []slip.Item{
			{Name: "Widget", SKU: "SKU-1", Quantity: 2, Weight: 1.5, OrderID: "X1"},
		},
	}
	body, err := json.Marshal(ExportRequest{Documents: []*slip.Document{doc}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slips/export", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "packing-slips-")
	assert.Contains(t, w.Body.String(), "X1")
	assert.Contains(t, w.Body.String(), "SKU-1")
}

func TestSlipHandler_History(t *testing.T) {
	t.Run("lists recent records", func(t *testing.T) {
		presetRepo := new(MockPresetRepository)
		recordRepo := new(MockRecordRepository)
		recordRepo.On("FindRecent", mock.Anything, 50).Return([]slip.ImportRecord{}, nil)

		router := newSlipRouter(presetRepo, recordRepo)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/slips/history", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		recordRepo.AssertExpectations(t)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		router := newSlipRouter(new(MockPresetRepository), new(MockRecordRepository))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/slips/history?limit=0", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deletes a record", func(t *testing.T) {
		presetRepo := new(MockPresetRepository)
		recordRepo := new(MockRecordRepository)
		id := uuid.New()
		recordRepo.On("Delete", mock.Anything, id).Return(nil)

		router := newSlipRouter(presetRepo, recordRepo)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/slips/history/"+id.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		recordRepo.AssertExpectations(t)
	})
}
