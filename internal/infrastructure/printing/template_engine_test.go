package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipdesk/backend/internal/domain/printing"
	"github.com/slipdesk/backend/internal/domain/slip"
)

func testDocument() *slip.Document {
	doc := slip.NewDocument("X123", slip.Customer{
		Name:     "Jane Smith",
		Address:  "12 Main St, Springfield, 12345",
		Phone:    "555-0101",
		Username: "jane",
	})
	doc.AddItem(slip.Item{
		Name:     "Blue Mug",
		SKU:      "SKU-1",
		Quantity: 2,
		Weight:   0.5,
		OrderID:  "X123",
		ImageURL: "https://cdn.example.com/mug.png",
	})
	doc.AddItem(slip.Item{
		Name:     "Red Plate",
		SKU:      "SKU-2",
		Quantity: 1,
		Weight:   1.5,
		OrderID:  "X123",
	})
	return doc
}

func TestTemplateEngine_Render(t *testing.T) {
	engine := NewTemplateEngine()

	t.Run("renders document fields", func(t *testing.T) {
		tmpl, err := printing.NewSlipTemplate("test",
			`<p>{{.Customer.Name}}</p><p>{{formatWeight .TotalWeight}}</p>`,
			printing.PaperSizeA4)
		require.NoError(t, err)

		result, err := engine.Render(context.Background(), &RenderTemplateRequest{
			Template: tmpl,
			Data:     testDocument(),
		})
		require.NoError(t, err)
		assert.Contains(t, result.HTML, "Jane Smith")
		assert.Contains(t, result.HTML, "2.5 kg")
	})

	t.Run("injects template CSS", func(t *testing.T) {
		tmpl, err := printing.NewSlipTemplate("test", `<p>{{.OrderNumber}}</p>`, printing.PaperSizeA4)
		require.NoError(t, err)
		require.NoError(t, tmpl.UpdateContent(tmpl.Content, ".slip { color: red; }"))

		result, err := engine.Render(context.Background(), &RenderTemplateRequest{
			Template: tmpl,
			Data:     testDocument(),
		})
		require.NoError(t, err)
		assert.Contains(t, result.HTML, "<style>.slip { color: red; }</style>")
		assert.Contains(t, result.HTML, "X123")
	})

	t.Run("escapes HTML in data", func(t *testing.T) {
		doc := slip.NewDocument("X1", slip.Customer{Name: "<script>alert(1)</script>"})
		tmpl, err := printing.NewSlipTemplate("test", `{{.Customer.Name}}`, printing.PaperSizeA4)
		require.NoError(t, err)

		result, err := engine.Render(context.Background(), &RenderTemplateRequest{
			Template: tmpl,
			Data:     doc,
		})
		require.NoError(t, err)
		assert.NotContains(t, result.HTML, "<script>")
	})

	t.Run("nil request", func(t *testing.T) {
		_, err := engine.Render(context.Background(), nil)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("invalid template syntax", func(t *testing.T) {
		tmpl, err := printing.NewSlipTemplate("test", `{{.Customer.Name`, printing.PaperSizeA4)
		require.NoError(t, err)

		_, err = engine.Render(context.Background(), &RenderTemplateRequest{
			Template: tmpl,
			Data:     testDocument(),
		})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("missing field fails execution", func(t *testing.T) {
		tmpl, err := printing.NewSlipTemplate("test", `{{.NoSuchField}}`, printing.PaperSizeA4)
		require.NoError(t, err)

		_, err = engine.Render(context.Background(), &RenderTemplateRequest{
			Template: tmpl,
			Data:     testDocument(),
		})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeRenderFailed, renderErr.Code)
	})
}

func TestTemplateEngine_RenderString(t *testing.T) {
	engine := NewTemplateEngine()

	html, err := engine.RenderString(context.Background(), "inline",
		`{{upper .Customer.Username}} {{formatQuantity .TotalQuantity}}`, testDocument())
	require.NoError(t, err)
	assert.Equal(t, "JANE x3", html)

	_, err = engine.RenderString(context.Background(), "empty", "", nil)
	assert.Error(t, err)
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "2.5 kg", formatWeight(2.5))
	assert.Equal(t, "0 kg", formatWeight(0.0))
	assert.Equal(t, "1.234 kg", formatWeight(1.2341))
	assert.Equal(t, "3 kg", formatWeight(3))
	assert.Equal(t, "0 kg", formatWeight("not a number"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "very lo...", truncate("very long product name", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestDefaultFunc(t *testing.T) {
	assert.Equal(t, "N/A", defaultFunc("N/A", ""))
	assert.Equal(t, "N/A", defaultFunc("N/A", "   "))
	assert.Equal(t, "X123", defaultFunc("N/A", "X123"))
	assert.Equal(t, 0, defaultFunc("N/A", 0))
}
