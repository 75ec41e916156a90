package printing

import (
	"time"

	"github.com/slipdesk/backend/internal/domain/printing"
)

// MarginsRequest is the margins payload in millimeters
type MarginsRequest struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// CreateTemplateRequest is the request to create a slip template
type CreateTemplateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Content     string          `json:"content" binding:"required"`
	CSS         string          `json:"css"`
	PaperSize   string          `json:"paperSize" binding:"required,papersize"`
	Orientation string          `json:"orientation" binding:"omitempty,orientation"`
	Margins     *MarginsRequest `json:"margins"`
}

// UpdateTemplateRequest is the request to update a slip template. Zero
// values leave the corresponding attribute unchanged, except Content and
// CSS which are always applied when Content is set.
type UpdateTemplateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Content     string          `json:"content"`
	CSS         string          `json:"css"`
	PaperSize   string          `json:"paperSize" binding:"omitempty,papersize"`
	Orientation string          `json:"orientation" binding:"omitempty,orientation"`
	Margins     *MarginsRequest `json:"margins"`
}

// TemplateResponse is the API representation of a slip template
type TemplateResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Content     string           `json:"content"`
	CSS         string           `json:"css"`
	PaperSize   string           `json:"paperSize"`
	Orientation string           `json:"orientation"`
	Margins     printing.Margins `json:"margins"`
	IsDefault   bool             `json:"isDefault"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ListTemplatesResponse is a list of templates
type ListTemplatesResponse struct {
	Items []TemplateResponse `json:"items"`
	Total int                `json:"total"`
}

// GenerateResponse describes a generated PDF batch
type GenerateResponse struct {
	BatchID       string `json:"batchId"`
	URL           string `json:"url"`
	Size          int64  `json:"size"`
	PageCount     int    `json:"pageCount"`
	DocumentCount int    `json:"documentCount"`
}

func toTemplateResponse(t *printing.SlipTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Content:     t.Content,
		CSS:         t.CSS,
		PaperSize:   string(t.PaperSize),
		Orientation: string(t.Orientation),
		Margins:     t.Margins,
		IsDefault:   t.IsDefault,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
