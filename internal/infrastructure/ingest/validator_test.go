package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeRow(line int, values map[string]string) *Row {
	headers := make([]string, 0, len(values))
	for h := range values {
		headers = append(headers, h)
	}
	return &Row{LineNumber: line, Headers: headers, Values: values}
}

func TestFieldValidator(t *testing.T) {
	t.Run("required field", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("sku").Required().Build(),
		}, 10)

		ok := v.ValidateRow(makeRow(2, map[string]string{"sku": ""}))
		assert.False(t, ok)
		assert.Equal(t, 1, v.Errors().Count())
		assert.Equal(t, ErrCodeIngestRequiredField, v.Errors().Errors()[0].Code)

		ok = v.ValidateRow(makeRow(3, map[string]string{"sku": "ABC-1"}))
		assert.True(t, ok)
	})

	t.Run("optional empty fields are skipped", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("imageUrl").URL().Build(),
		}, 10)

		ok := v.ValidateRow(makeRow(2, map[string]string{"imageUrl": ""}))
		assert.True(t, ok)
		assert.False(t, v.Errors().HasErrors())
	})

	t.Run("url validation", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("imageUrl").Required().URL().Build(),
		}, 10)

		assert.True(t, v.ValidateRow(makeRow(2, map[string]string{"imageUrl": "https://cdn.example.com/a.png"})))
		assert.False(t, v.ValidateRow(makeRow(3, map[string]string{"imageUrl": "ftp://example.com/a.png"})))
		assert.False(t, v.ValidateRow(makeRow(4, map[string]string{"imageUrl": "not a url"})))
	})

	t.Run("max length", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("sku").MaxLength(5).Build(),
		}, 10)

		assert.True(t, v.ValidateRow(makeRow(2, map[string]string{"sku": "12345"})))
		assert.False(t, v.ValidateRow(makeRow(3, map[string]string{"sku": "123456"})))
	})

	t.Run("numeric types", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("qty").Int().Build(),
			Field("weight").Float().Build(),
		}, 10)

		assert.True(t, v.ValidateRow(makeRow(2, map[string]string{"qty": "3", "weight": "1.5"})))
		assert.False(t, v.ValidateRow(makeRow(3, map[string]string{"qty": "three", "weight": "1.5"})))
	})

	t.Run("uniqueness within file is case-insensitive", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("sku").Unique().Build(),
		}, 10)

		assert.True(t, v.ValidateRow(makeRow(2, map[string]string{"sku": "ABC-1"})))
		assert.False(t, v.ValidateRow(makeRow(3, map[string]string{"sku": "abc-1"})))
		assert.Equal(t, ErrCodeIngestDuplicate, v.Errors().Errors()[0].Code)
	})

	t.Run("reset clears state", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("sku").Unique().Build(),
		}, 10)

		assert.True(t, v.ValidateRow(makeRow(2, map[string]string{"sku": "ABC-1"})))
		assert.False(t, v.ValidateRow(makeRow(3, map[string]string{"sku": "ABC-1"})))

		v.Reset()
		assert.False(t, v.Errors().HasErrors())
		assert.True(t, v.ValidateRow(makeRow(2, map[string]string{"sku": "ABC-1"})))
	})
}

func TestErrorCollection(t *testing.T) {
	t.Run("caps stored errors but counts all", func(t *testing.T) {
		ec := NewErrorCollection(2)
		for i := 0; i < 5; i++ {
			ec.AddRequiredError(i+2, "sku")
		}

		assert.Equal(t, 2, ec.Count())
		assert.Equal(t, 5, ec.TotalCount())
		assert.True(t, ec.IsTruncated())
		assert.Contains(t, ec.String(), "5 error(s)")
	})

	t.Run("empty collection", func(t *testing.T) {
		ec := NewErrorCollection(10)
		assert.False(t, ec.HasErrors())
		assert.Equal(t, "no errors", ec.String())
	})
}
