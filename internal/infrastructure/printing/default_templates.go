package printing

import (
	"embed"
	"fmt"

	"github.com/slipdesk/backend/internal/domain/printing"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTemplate represents a built-in slip template configuration
type DefaultTemplate struct {
	Name        string
	Description string
	PaperSize   printing.PaperSize
	Orientation printing.Orientation
	Margins     printing.Margins
	FilePath    string // Path within embed.FS
	IsDefault   bool
}

// GetDefaultTemplates returns all built-in template configurations
func GetDefaultTemplates() []DefaultTemplate {
	return []DefaultTemplate{
		{
			Name:        "Packing Slip A4",
			Description: "Standard A4 packing slip with customer block, item table and weight summary",
			PaperSize:   printing.PaperSizeA4,
			Orientation: printing.OrientationPortrait,
			Margins:     printing.DefaultMargins(),
			FilePath:    "templates/packing_slip_a4.html",
			IsDefault:   true,
		},
		{
			Name:        "Packing Slip A5",
			Description: "Compact A5 packing slip for small parcels",
			PaperSize:   printing.PaperSizeA5,
			Orientation: printing.OrientationPortrait,
			Margins:     printing.DefaultMargins(),
			FilePath:    "templates/packing_slip_a5.html",
			IsDefault:   false,
		},
		{
			Name:        "Packing Slip 80mm Receipt",
			Description: "80mm thermal receipt format for label printers",
			PaperSize:   printing.PaperSizeReceipt80MM,
			Orientation: printing.OrientationPortrait,
			Margins:     printing.ReceiptMargins(),
			FilePath:    "templates/packing_slip_receipt.html",
			IsDefault:   false,
		},
	}
}

// LoadTemplateContent reads the HTML content of a built-in template
func LoadTemplateContent(filePath string) (string, error) {
	data, err := templateFS.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", filePath, err)
	}
	return string(data), nil
}

// BuildDefaultTemplate constructs a domain template from a built-in configuration
func BuildDefaultTemplate(def DefaultTemplate) (*printing.SlipTemplate, error) {
	content, err := LoadTemplateContent(def.FilePath)
	if err != nil {
		return nil, err
	}

	tmpl, err := printing.NewSlipTemplate(def.Name, content, def.PaperSize)
	if err != nil {
		return nil, err
	}
	tmpl.Description = def.Description
	if err := tmpl.SetOrientation(def.Orientation); err != nil {
		return nil, err
	}
	if err := tmpl.SetMargins(def.Margins); err != nil {
		return nil, err
	}
	if def.IsDefault {
		tmpl.MarkDefault()
	}

	return tmpl, nil
}
