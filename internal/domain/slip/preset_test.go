package slip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMappingPreset(t *testing.T) {
	t.Run("valid preset clones the mapping", func(t *testing.T) {
		mapping := FieldMapping{FieldOrderID: "Order ID"}
		preset, err := NewMappingPreset("TikTok Export", mapping)
		require.NoError(t, err)

		mapping[FieldOrderID] = "changed"
		assert.Equal(t, "Order ID", preset.Mapping.Header(FieldOrderID))
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewMappingPreset(" ", FieldMapping{FieldOrderID: "Order ID"})
		assert.Error(t, err)
	})

	t.Run("empty mapping rejected", func(t *testing.T) {
		_, err := NewMappingPreset("Empty", NewFieldMapping())
		assert.Error(t, err)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := NewMappingPreset("Bad", FieldMapping{LogicalField("bogus"): "X"})
		assert.Error(t, err)
	})
}

func TestMappingPreset_UpdateMapping(t *testing.T) {
	preset, err := NewMappingPreset("P", FieldMapping{FieldOrderID: "Order ID"})
	require.NoError(t, err)

	require.NoError(t, preset.UpdateMapping(FieldMapping{FieldQuantity: "Qty"}))
	assert.Equal(t, "Qty", preset.Mapping.Header(FieldQuantity))
	assert.Error(t, preset.UpdateMapping(NewFieldMapping()))
}

func TestImportRecordStatus(t *testing.T) {
	rec := NewImportRecord("orders.csv", 10, 10, 0, 3)
	assert.Equal(t, ImportStatusCompleted, rec.Status)

	rec = NewImportRecord("orders.csv", 10, 8, 2, 3)
	assert.Equal(t, ImportStatusPartial, rec.Status)

	failed := NewFailedImportRecord("orders.csv", 10, "no valid orders")
	assert.Equal(t, ImportStatusFailed, failed.Status)
	assert.Equal(t, "no valid orders", failed.ErrorMessage)
}
