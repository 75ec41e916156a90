package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slipdesk/backend/internal/application/printing"
	"github.com/slipdesk/backend/internal/domain/slip"
	"github.com/slipdesk/backend/internal/interfaces/http/dto"
)

// PrintHandler handles slip template and PDF generation endpoints
type PrintHandler struct {
	BaseHandler
	service *printing.PrintService
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(service *printing.PrintService) *PrintHandler {
	return &PrintHandler{service: service}
}

// CreateTemplate creates a new slip template
func (h *PrintHandler) CreateTemplate(c *gin.Context) {
	var req printing.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tmpl, err := h.service.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tmpl)
}

// GetTemplate returns one slip template
func (h *PrintHandler) GetTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid template ID")
		return
	}

	tmpl, err := h.service.GetTemplate(c.Request.Context(), uri.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tmpl)
}

// ListTemplates returns all slip templates
func (h *PrintHandler) ListTemplates(c *gin.Context) {
	resp, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateTemplate changes an existing slip template
func (h *PrintHandler) UpdateTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid template ID")
		return
	}

	var req printing.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tmpl, err := h.service.UpdateTemplate(c.Request.Context(), uri.UUID(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tmpl)
}

// SetDefaultTemplate marks a template as the default
func (h *PrintHandler) SetDefaultTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid template ID")
		return
	}

	tmpl, err := h.service.SetDefaultTemplate(c.Request.Context(), uri.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tmpl)
}

// DeleteTemplate removes a slip template
func (h *PrintHandler) DeleteTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "invalid template ID")
		return
	}

	if err := h.service.DeleteTemplate(c.Request.Context(), uri.UUID()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GenerateRequest carries documents to render into a PDF batch
type GenerateRequest struct {
	Documents  []*slip.Document `json:"documents" binding:"required"`
	TemplateID string           `json:"templateId" binding:"omitempty,uuid"`
}

// Generate renders the given documents into a stored PDF batch
func (h *PrintHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	var templateID *uuid.UUID
	if req.TemplateID != "" {
		id, err := uuid.Parse(req.TemplateID)
		if err != nil {
			h.BadRequest(c, "invalid template ID")
			return
		}
		templateID = &id
	}

	resp, err := h.service.GeneratePDF(c.Request.Context(), req.Documents, templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// FetchPDF streams a previously generated PDF batch
func (h *PrintHandler) FetchPDF(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		h.BadRequest(c, "path is required")
		return
	}

	reader, err := h.service.FetchPDF(c.Request.Context(), path)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already written, nothing sensible left to report
		_ = c.Error(err)
	}
}

// RegisterRoutes registers all template and PDF routes
func (h *PrintHandler) RegisterRoutes(rg *gin.RouterGroup) {
	templates := rg.Group("/slip-templates")
	templates.POST("", h.CreateTemplate)
	templates.GET("", h.ListTemplates)
	templates.GET("/:id", h.GetTemplate)
	templates.PUT("/:id", h.UpdateTemplate)
	templates.DELETE("/:id", h.DeleteTemplate)
	templates.POST("/:id/default", h.SetDefaultTemplate)

	pdf := rg.Group("/slips/pdf")
	pdf.POST("", h.Generate)
	pdf.GET("/*path", h.FetchPDF)
}
