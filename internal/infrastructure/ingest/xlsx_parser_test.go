package ingest

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestXLSXParser(t *testing.T) {
	t.Run("reads header and rows from first sheet", func(t *testing.T) {
		r := buildWorkbook(t, [][]interface{}{
			{"Order ID", "Product Name", "Quantity"},
			{"123", "Widget", "2"},
			{"456", "Gadget", "1"},
		})

		parser, err := NewXLSXParser(r)
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, []string{"Order ID", "Product Name", "Quantity"}, parser.Headers())
		assert.True(t, parser.HasHeader("Quantity"))

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "123", rows[0].Get("Order ID"))
		assert.Equal(t, "Gadget", rows[1].Get("Product Name"))
		assert.Equal(t, 2, parser.TotalRows())
	})

	t.Run("pads short rows with empty values", func(t *testing.T) {
		r := buildWorkbook(t, [][]interface{}{
			{"A", "B", "C"},
			{"1", "2"},
		})

		parser, err := NewXLSXParser(r)
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "1", row.Get("A"))
		assert.Equal(t, "", row.Get("C"))
	})

	t.Run("skips completely empty rows", func(t *testing.T) {
		r := buildWorkbook(t, [][]interface{}{
			{"A", "B"},
			{"1", "2"},
			{"", ""},
			{"3", "4"},
		})

		parser, err := NewXLSXParser(r)
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "3", rows[1].Get("A"))
	})

	t.Run("rejects non-workbook input", func(t *testing.T) {
		_, err := NewXLSXParser(strings.NewReader("not a workbook"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
