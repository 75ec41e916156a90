package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipdesk/backend/internal/domain/printing"
)

func newTestRenderer(t *testing.T) *ChromedpRenderer {
	t.Helper()
	r, err := NewChromedpRenderer(&ChromedpConfig{Headless: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestBuildPrintParams(t *testing.T) {
	r := newTestRenderer(t)

	t.Run("A4 portrait", func(t *testing.T) {
		params := r.buildPrintParams(&RenderRequest{
			PaperSize:   printing.PaperSizeA4,
			Orientation: printing.OrientationPortrait,
			Margins:     printing.DefaultMargins(),
		})
		assert.InDelta(t, 210.0/25.4, params.paperWidth, 0.001)
		assert.InDelta(t, 297.0/25.4, params.paperHeight, 0.001)
		assert.InDelta(t, 10.0/25.4, params.marginTop, 0.001)
		assert.False(t, params.landscape)
		assert.False(t, params.displayHeaderFooter)
	})

	t.Run("landscape", func(t *testing.T) {
		params := r.buildPrintParams(&RenderRequest{
			PaperSize:   printing.PaperSizeA5,
			Orientation: printing.OrientationLandscape,
		})
		assert.True(t, params.landscape)
	})

	t.Run("receipt paper uses tall page", func(t *testing.T) {
		params := r.buildPrintParams(&RenderRequest{
			PaperSize: printing.PaperSizeReceipt80MM,
			Margins:   printing.ReceiptMargins(),
		})
		assert.InDelta(t, 80.0/25.4, params.paperWidth, 0.001)
		assert.InDelta(t, 3000.0/25.4, params.paperHeight, 0.001)
	})

	t.Run("header forces minimum top margin", func(t *testing.T) {
		params := r.buildPrintParams(&RenderRequest{
			PaperSize:  printing.PaperSizeA4,
			Margins:    printing.Margins{Top: 2, Right: 2, Bottom: 2, Left: 2},
			HeaderHTML: "<span>header</span>",
		})
		assert.True(t, params.displayHeaderFooter)
		assert.InDelta(t, 10.0/25.4, params.marginTop, 0.001)
		assert.InDelta(t, 2.0/25.4, params.marginBottom, 0.001)
	})
}

func TestBuildCompleteHTML(t *testing.T) {
	r := newTestRenderer(t)

	t.Run("wraps fragment", func(t *testing.T) {
		html := r.buildCompleteHTML(&RenderRequest{HTML: "<p>hello</p>", Title: "Slip"})
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "<title>Slip</title>")
		assert.Contains(t, html, "<p>hello</p>")
	})

	t.Run("keeps complete document as-is", func(t *testing.T) {
		full := "<!DOCTYPE html><html><body>hi</body></html>"
		assert.Equal(t, full, r.buildCompleteHTML(&RenderRequest{HTML: full}))
	})
}

func TestRenderValidation(t *testing.T) {
	r := newTestRenderer(t)

	t.Run("nil request", func(t *testing.T) {
		_, err := r.Render(context.Background(), nil)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("empty HTML", func(t *testing.T) {
		_, err := r.Render(context.Background(), &RenderRequest{HTML: "  ", PaperSize: printing.PaperSizeA4})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("invalid paper size", func(t *testing.T) {
		_, err := r.Render(context.Background(), &RenderRequest{HTML: "<p>hi</p>", PaperSize: "A3"})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidPaperSize, renderErr.Code)
	})
}

func TestEstimatePageCount(t *testing.T) {
	pdf := []byte("%PDF-1.4\n/Type /Pages\n/Type /Page\n/Type /Page\n")
	assert.Equal(t, 2, estimatePageCount(pdf))
	assert.Equal(t, 1, estimatePageCount([]byte("%PDF-1.4")))
}

func TestRenderError(t *testing.T) {
	cause := assert.AnError
	err := NewRenderError(ErrCodeRenderFailed, "boom", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "RENDER_FAILED")
	assert.Contains(t, err.Error(), "boom")

	bare := NewRenderError(ErrCodeRenderTimeout, "slow", nil)
	assert.Equal(t, "RENDER_TIMEOUT: slow", bare.Error())
}

func TestMmToInches(t *testing.T) {
	assert.InDelta(t, 1.0, mmToInches(25.4), 0.0001)
}
