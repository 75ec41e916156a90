package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slipdesk/backend/internal/application/images"
	"github.com/slipdesk/backend/internal/interfaces/http/dto"
)

// Maximum upload size for SKU image CSV imports (10MB)
const maxImageImportSize = 10 * 1024 * 1024

// SkuImageHandler handles SKU image mapping endpoints
type SkuImageHandler struct {
	BaseHandler
	service *images.SkuImageService
}

// NewSkuImageHandler creates a new SkuImageHandler
func NewSkuImageHandler(service *images.SkuImageService) *SkuImageHandler {
	return &SkuImageHandler{service: service}
}

// Create registers a new SKU image mapping
func (h *SkuImageHandler) Create(c *gin.Context) {
	var req images.CreateSkuImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	img, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, img)
}

// Get returns one SKU image mapping
func (h *SkuImageHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid image ID")
		return
	}

	img, err := h.service.Get(c.Request.Context(), uri.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, img)
}

// List returns all SKU image mappings
func (h *SkuImageHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update changes the image URL of an existing mapping
func (h *SkuImageHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid image ID")
		return
	}

	var req images.UpdateSkuImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	img, err := h.service.Update(c.Request.Context(), uri.UUID(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, img)
}

// Delete removes a SKU image mapping
func (h *SkuImageHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid image ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.UUID()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Import bulk-loads SKU image mappings from an uploaded CSV
func (h *SkuImageHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageImportSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "file exceeds maximum size of 10MB")
		return
	}

	result, err := h.service.ImportCSV(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers all SKU image routes
func (h *SkuImageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sku-images")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.POST("/import", h.Import)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
