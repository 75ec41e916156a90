package handler

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/slipdesk/backend/internal/application/slips"
	"github.com/slipdesk/backend/internal/domain/slip"
	"github.com/slipdesk/backend/internal/interfaces/http/dto"
)

const (
	// Maximum upload size for order exports (20MB)
	maxUploadSize = 20 * 1024 * 1024

	defaultHistoryLimit = 50
)

// SlipHandler handles order-export processing endpoints
type SlipHandler struct {
	BaseHandler
	service *slips.ProcessService
}

// NewSlipHandler creates a new SlipHandler
func NewSlipHandler(service *slips.ProcessService) *SlipHandler {
	return &SlipHandler{service: service}
}

// openUpload extracts the uploaded file and builds the process request from
// the multipart form
func (h *SlipHandler) openUpload(c *gin.Context) (multipart.File, slips.ProcessRequest, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return nil, slips.ProcessRequest{}, false
	}

	if header.Size > maxUploadSize {
		file.Close()
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "file exceeds maximum size of 20MB")
		return nil, slips.ProcessRequest{}, false
	}

	req := slips.ProcessRequest{
		Filename:   header.Filename,
		Charset:    c.PostForm("charset"),
		PresetName: c.PostForm("preset"),
	}

	if d := c.PostForm("delimiter"); d != "" {
		r, size := utf8.DecodeRuneInString(d)
		if r == utf8.RuneError || size != len(d) {
			file.Close()
			h.BadRequest(c, "delimiter must be a single character")
			return nil, slips.ProcessRequest{}, false
		}
		req.Delimiter = r
	}

	if raw := c.PostForm("mapping"); raw != "" {
		var mapping map[string]string
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			file.Close()
			h.BadRequest(c, "mapping must be a JSON object of field to header")
			return nil, slips.ProcessRequest{}, false
		}
		req.Mapping = slips.MappingFromRequest(mapping)
	}

	return file, req, true
}

// Preview inspects an uploaded file without processing it
func (h *SlipHandler) Preview(c *gin.Context) {
	file, req, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	resp, err := h.service.Preview(c.Request.Context(), req, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Process turns an uploaded order export into packing slip documents
func (h *SlipHandler) Process(c *gin.Context) {
	file, req, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	resp, err := h.service.Process(c.Request.Context(), req, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ExportRequest carries documents back for CSV export
type ExportRequest struct {
	Documents []*slip.Document `json:"documents" binding:"required"`
}

// Export streams the given documents as a CSV download
func (h *SlipHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	filename := fmt.Sprintf("packing-slips-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.service.ExportCSV(c.Writer, req.Documents); err != nil {
		h.HandleError(c, err)
		return
	}
}

// History lists recent import runs
func (h *SlipHandler) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil || limit <= 0 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
	}

	records, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// DeleteHistory removes one history entry
func (h *SlipHandler) DeleteHistory(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "invalid record ID")
		return
	}

	if err := h.service.DeleteHistoryRecord(c.Request.Context(), req.UUID()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all slip processing routes
func (h *SlipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/slips")
	group.POST("/preview", h.Preview)
	group.POST("/process", h.Process)
	group.POST("/export", h.Export)
	group.GET("/history", h.History)
	group.DELETE("/history/:id", h.DeleteHistory)
}
