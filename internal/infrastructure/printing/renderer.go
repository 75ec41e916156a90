package printing

import (
	"bytes"
	"context"
	"time"

	"github.com/slipdesk/backend/internal/domain/printing"
)

// PDFRenderer converts rendered HTML into PDF data.
type PDFRenderer interface {
	// Render converts HTML content to PDF
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	// Close releases any resources held by the renderer
	Close() error
}

// RenderRequest contains the parameters for PDF rendering
type RenderRequest struct {
	// HTML is the content to render
	HTML string
	// PaperSize determines the page dimensions
	PaperSize printing.PaperSize
	// Orientation of the page
	Orientation printing.Orientation
	// Margins in millimeters
	Margins printing.Margins
	// Title for the PDF document metadata
	Title string
	// HeaderHTML is an optional per-page header template
	HeaderHTML string
	// FooterHTML is an optional per-page footer template
	FooterHTML string
	// Timeout overrides the renderer default when non-zero
	Timeout time.Duration
}

// RenderResult contains the output of a render operation
type RenderResult struct {
	// PDFData is the raw PDF content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// Error codes for render failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeBinaryNotFound   = "BINARY_NOT_FOUND"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeStorageFailed    = "STORAGE_FAILED"
)

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// estimatePageCount counts pages in PDF data by scanning page objects
func estimatePageCount(pdfData []byte) int {
	count := bytes.Count(pdfData, []byte("/Type /Page"))
	// The count also includes the parent "/Type /Pages" object
	parentCount := bytes.Count(pdfData, []byte("/Type /Pages"))
	count = count - parentCount
	return max(count, 1)
}
