package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/slipdesk/backend/internal/domain/printing"
)

// TemplateEngine renders slip templates with packing slip data.
// It uses Go's html/template package with custom formatting functions.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{}

	e.funcMap = template.FuncMap{
		// Number formatting
		"formatWeight":   formatWeight,
		"formatQuantity": formatQuantity,

		// Date formatting
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		// String utilities
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"title":    titleCase,
		"trim":     strings.TrimSpace,
		"truncate": truncate,
		"join":     strings.Join,
		"replace":  strings.ReplaceAll,
		"contains": strings.Contains,

		// Arithmetic
		"add": add,
		"mul": mul,

		// Conditional
		"default": defaultFunc,

		// Safe HTML
		"safeHTML": safeHTML,
		"safeCSS":  safeCSS,
		"safeURL":  safeURL,

		// Misc
		"now": time.Now,
	}

	return e
}

// RenderTemplateRequest represents a request to render a slip template
type RenderTemplateRequest struct {
	// Template is the slip template to render
	Template *printing.SlipTemplate
	// Data is the packing slip data to bind to the template
	Data interface{}
	// AdditionalFuncs are extra template functions (optional)
	AdditionalFuncs template.FuncMap
}

// RenderTemplateResult contains the rendered HTML output
type RenderTemplateResult struct {
	// HTML is the rendered HTML content
	HTML string
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// Render renders a slip template with the provided data. The template CSS,
// when present, is injected into a style block ahead of the rendered body.
func (e *TemplateEngine) Render(ctx context.Context, req *RenderTemplateRequest) (*RenderTemplateResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if req.Template == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "template is nil", nil)
	}
	if req.Template.Content == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	startTime := time.Now()

	funcMap := make(template.FuncMap)
	maps.Copy(funcMap, e.funcMap)
	if req.AdditionalFuncs != nil {
		maps.Copy(funcMap, req.AdditionalFuncs)
	}

	tmpl, err := template.New(req.Template.ID.String()).Funcs(funcMap).Parse(req.Template.Content)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if req.Template.CSS != "" {
		buf.WriteString("<style>")
		buf.WriteString(req.Template.CSS)
		buf.WriteString("</style>")
	}
	if err := tmpl.Execute(&buf, req.Data); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}

	return &RenderTemplateResult{
		HTML:           buf.String(),
		RenderDuration: time.Since(startTime),
	}, nil
}

// RenderString renders a template string with the provided data
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data interface{}) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}

	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// formatWeight formats a weight in kilograms with up to three decimal places,
// trimming trailing zeros. Example: 2.500 -> "2.5 kg"
func formatWeight(v interface{}) string {
	d := toDecimal(v)
	return d.Round(3).String() + " kg"
}

// formatQuantity formats an item quantity with a multiplication sign
// Example: 3 -> "x3"
func formatQuantity(v interface{}) string {
	return "x" + fmt.Sprintf("%v", v)
}

// formatDate formats a time as YYYY-MM-DD
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// formatDateTime formats a time as YYYY-MM-DD HH:MM:SS
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

var titleCaser = cases.Title(language.English)

// titleCase converts a string to title case
func titleCase(s string) string {
	return titleCaser.String(s)
}

// truncate shortens a string to maxLen runes, appending "..." when cut
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// add returns a+b as a decimal string for mixed numeric inputs
func add(a, b interface{}) string {
	return toDecimal(a).Add(toDecimal(b)).String()
}

// mul returns a*b as a decimal string for mixed numeric inputs
func mul(a, b interface{}) string {
	return toDecimal(a).Mul(toDecimal(b)).String()
}

// defaultFunc returns fallback when value is empty
func defaultFunc(fallback, value interface{}) interface{} {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return fallback
	}
	return value
}

// safeHTML marks a string as safe HTML (bypasses escaping)
func safeHTML(s string) template.HTML {
	return template.HTML(s) //nolint:gosec // templates are admin-authored
}

// safeCSS marks a string as safe CSS
func safeCSS(s string) template.CSS {
	return template.CSS(s) //nolint:gosec // templates are admin-authored
}

// safeURL marks a string as a safe URL
func safeURL(s string) template.URL {
	return template.URL(s) //nolint:gosec // templates are admin-authored
}

// toDecimal converts supported numeric types to decimal.Decimal
func toDecimal(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
