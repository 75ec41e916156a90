package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/slipdesk/backend/internal/application/slips"
	"github.com/slipdesk/backend/internal/interfaces/http/dto"
)

// MappingPresetHandler handles mapping preset endpoints
type MappingPresetHandler struct {
	BaseHandler
	service *slips.ProcessService
}

// NewMappingPresetHandler creates a new MappingPresetHandler
func NewMappingPresetHandler(service *slips.ProcessService) *MappingPresetHandler {
	return &MappingPresetHandler{service: service}
}

// Create saves a new mapping preset
func (h *MappingPresetHandler) Create(c *gin.Context) {
	var req slips.CreatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	preset, err := h.service.CreatePreset(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, preset)
}

// Get returns one mapping preset
func (h *MappingPresetHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid preset ID")
		return
	}

	preset, err := h.service.GetPreset(c.Request.Context(), uri.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, preset)
}

// List returns all mapping presets
func (h *MappingPresetHandler) List(c *gin.Context) {
	presets, err := h.service.ListPresets(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, presets)
}

// Update replaces the mapping of an existing preset
func (h *MappingPresetHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid preset ID")
		return
	}

	var req slips.UpdatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	preset, err := h.service.UpdatePreset(c.Request.Context(), uri.UUID(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, preset)
}

// Delete removes a mapping preset
func (h *MappingPresetHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid preset ID")
		return
	}

	if err := h.service.DeletePreset(c.Request.Context(), uri.UUID()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all mapping preset routes
func (h *MappingPresetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/mapping-presets")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
