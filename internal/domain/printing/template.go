package printing

import (
	"strings"
	"time"

	"github.com/slipdesk/backend/internal/domain/shared"
)

const (
	maxTemplateNameLength    = 100
	maxTemplateContentLength = 512 * 1024
)

// SlipTemplate is the HTML template used to render packing slips. The
// content is a html/template document fed with one packing slip document
// per render.
type SlipTemplate struct {
	shared.BaseEntity
	Name        string
	Description string
	Content     string // HTML template body
	CSS         string // optional stylesheet injected into the page head
	PaperSize   PaperSize
	Orientation Orientation
	Margins     Margins
	IsDefault   bool
	Status      TemplateStatus
}

// NewSlipTemplate creates a new slip template
func NewSlipTemplate(name, content string, paperSize PaperSize) (*SlipTemplate, error) {
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}
	if err := validateTemplateContent(content); err != nil {
		return nil, err
	}
	if !paperSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAPER_SIZE", "invalid paper size: "+string(paperSize))
	}

	t := &SlipTemplate{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Content:     content,
		PaperSize:   paperSize,
		Orientation: OrientationPortrait,
		Margins:     DefaultMargins(),
		Status:      TemplateStatusActive,
	}

	if paperSize.IsReceipt() {
		t.Margins = ReceiptMargins()
	}

	return t, nil
}

// Update updates the template's basic information
func (t *SlipTemplate) Update(name, description string) error {
	if err := validateTemplateName(name); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(name)
	t.Description = strings.TrimSpace(description)
	t.UpdatedAt = time.Now()

	return nil
}

// UpdateContent replaces the template body and stylesheet
func (t *SlipTemplate) UpdateContent(content, css string) error {
	if err := validateTemplateContent(content); err != nil {
		return err
	}

	t.Content = content
	t.CSS = css
	t.UpdatedAt = time.Now()

	return nil
}

// SetPaperSize sets the paper size, adjusting margins for receipt paper
func (t *SlipTemplate) SetPaperSize(paperSize PaperSize) error {
	if !paperSize.IsValid() {
		return shared.NewDomainError("INVALID_PAPER_SIZE", "invalid paper size: "+string(paperSize))
	}

	t.PaperSize = paperSize
	if paperSize.IsReceipt() {
		t.Margins = ReceiptMargins()
	}
	t.UpdatedAt = time.Now()

	return nil
}

// SetOrientation sets the page orientation
func (t *SlipTemplate) SetOrientation(orientation Orientation) error {
	if !orientation.IsValid() {
		return shared.NewDomainError("INVALID_ORIENTATION", "invalid orientation: "+string(orientation))
	}

	t.Orientation = orientation
	t.UpdatedAt = time.Now()

	return nil
}

// SetMargins sets custom page margins
func (t *SlipTemplate) SetMargins(margins Margins) error {
	if !margins.IsValid() {
		return shared.NewDomainError("INVALID_MARGINS", "margins must not be negative")
	}

	t.Margins = margins
	t.UpdatedAt = time.Now()

	return nil
}

// MarkDefault flags this template as the default for rendering
func (t *SlipTemplate) MarkDefault() {
	t.IsDefault = true
	t.UpdatedAt = time.Now()
}

// ClearDefault removes the default flag
func (t *SlipTemplate) ClearDefault() {
	t.IsDefault = false
	t.UpdatedAt = time.Now()
}

// Activate marks the template as usable
func (t *SlipTemplate) Activate() {
	t.Status = TemplateStatusActive
	t.UpdatedAt = time.Now()
}

// Deactivate retires the template without deleting it
func (t *SlipTemplate) Deactivate() {
	t.Status = TemplateStatusInactive
	t.UpdatedAt = time.Now()
}

// IsActive returns true when the template can be used for rendering
func (t *SlipTemplate) IsActive() bool {
	return t.Status == TemplateStatusActive
}

func validateTemplateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_NAME", "template name must not be empty")
	}
	if len(trimmed) > maxTemplateNameLength {
		return shared.NewDomainError("INVALID_TEMPLATE_NAME", "template name too long")
	}
	return nil
}

func validateTemplateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_CONTENT", "template content must not be empty")
	}
	if len(content) > maxTemplateContentLength {
		return shared.NewDomainError("INVALID_TEMPLATE_CONTENT", "template content too large")
	}
	return nil
}
