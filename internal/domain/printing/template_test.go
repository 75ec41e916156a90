package printing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlipTemplate(t *testing.T) {
	t.Run("creates active portrait template", func(t *testing.T) {
		tpl, err := NewSlipTemplate("Standard", "<html>{{.OrderNumber}}</html>", PaperSizeA4)
		require.NoError(t, err)

		assert.Equal(t, "Standard", tpl.Name)
		assert.Equal(t, OrientationPortrait, tpl.Orientation)
		assert.Equal(t, DefaultMargins(), tpl.Margins)
		assert.Equal(t, TemplateStatusActive, tpl.Status)
		assert.False(t, tpl.IsDefault)
		assert.NotEqual(t, "", tpl.ID.String())
	})

	t.Run("receipt paper gets receipt margins", func(t *testing.T) {
		tpl, err := NewSlipTemplate("Receipt", "<html></html>", PaperSizeReceipt80MM)
		require.NoError(t, err)
		assert.Equal(t, ReceiptMargins(), tpl.Margins)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSlipTemplate("  ", "<html></html>", PaperSizeA4)
		assert.Error(t, err)
	})

	t.Run("rejects oversized name", func(t *testing.T) {
		_, err := NewSlipTemplate(strings.Repeat("x", 101), "<html></html>", PaperSizeA4)
		assert.Error(t, err)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewSlipTemplate("Standard", "   ", PaperSizeA4)
		assert.Error(t, err)
	})

	t.Run("rejects unknown paper size", func(t *testing.T) {
		_, err := NewSlipTemplate("Standard", "<html></html>", PaperSize("B5"))
		assert.Error(t, err)
	})
}

func TestSlipTemplate_Mutations(t *testing.T) {
	tpl, err := NewSlipTemplate("Standard", "<html></html>", PaperSizeA4)
	require.NoError(t, err)

	t.Run("switching to receipt paper adjusts margins", func(t *testing.T) {
		require.NoError(t, tpl.SetPaperSize(PaperSizeReceipt80MM))
		assert.Equal(t, ReceiptMargins(), tpl.Margins)
	})

	t.Run("invalid orientation rejected", func(t *testing.T) {
		assert.Error(t, tpl.SetOrientation(Orientation("DIAGONAL")))
	})

	t.Run("negative margins rejected", func(t *testing.T) {
		assert.Error(t, tpl.SetMargins(Margins{Top: -1}))
	})

	t.Run("default flag toggles", func(t *testing.T) {
		tpl.MarkDefault()
		assert.True(t, tpl.IsDefault)
		tpl.ClearDefault()
		assert.False(t, tpl.IsDefault)
	})

	t.Run("status lifecycle", func(t *testing.T) {
		tpl.Deactivate()
		assert.False(t, tpl.IsActive())
		tpl.Activate()
		assert.True(t, tpl.IsActive())
	})
}

func TestPaperSize(t *testing.T) {
	w, h := PaperSizeA4.Dimensions()
	assert.Equal(t, 210, w)
	assert.Equal(t, 297, h)

	w, _ = PaperSizeReceipt80MM.Dimensions()
	assert.Equal(t, 80, w)
	assert.True(t, PaperSizeReceipt80MM.IsReceipt())
	assert.False(t, PaperSizeA4.IsReceipt())
	assert.False(t, PaperSize("B5").IsValid())
}
