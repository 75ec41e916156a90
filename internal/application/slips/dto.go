package slips

import (
	"time"

	"github.com/slipdesk/backend/internal/domain/slip"
)

// ProcessRequest carries one uploaded order export through the pipeline
type ProcessRequest struct {
	// Filename of the upload, used to pick the parser and for history
	Filename string
	// Charset of the file when it is not UTF-8 (CSV only)
	Charset string
	// Delimiter overrides the CSV delimiter when non-zero
	Delimiter rune
	// Mapping is an explicit column mapping. Mapped entries win over
	// automatic resolution.
	Mapping slip.FieldMapping
	// PresetName loads a saved mapping preset as the explicit mapping
	PresetName string
}

// ProcessResponse is the result of processing one order export
type ProcessResponse struct {
	Documents []*slip.Document `json:"documents"`
	Stats     AggregationStats `json:"stats"`
	Mapping   MappingResponse  `json:"mapping"`
	RecordID  string           `json:"recordId"`
}

// PreviewResponse describes a file before it is processed: the headers
// found, the mapping that automatic resolution produced, and a few rows
// so the user can verify the mapping.
type PreviewResponse struct {
	Headers     []string            `json:"headers"`
	Mapping     MappingResponse     `json:"mapping"`
	Marketplace bool                `json:"marketplace"`
	SampleRows  []map[string]string `json:"sampleRows"`
	TotalRows   int                 `json:"totalRows"`
}

// MappingResponse is the API representation of a column mapping. Unmapped
// fields are omitted.
type MappingResponse map[string]string

func toMappingResponse(mapping slip.FieldMapping) MappingResponse {
	resp := make(MappingResponse)
	for field, header := range mapping {
		if header != slip.Unmapped {
			resp[string(field)] = header
		}
	}
	return resp
}

// MappingFromRequest builds a field mapping from the raw API form,
// leaving fields absent from the form unmapped.
func MappingFromRequest(raw map[string]string) slip.FieldMapping {
	mapping := slip.NewFieldMapping()
	for field, header := range raw {
		mapping[slip.LogicalField(field)] = header
	}
	return mapping
}

// CreatePresetRequest saves a column mapping under a name
type CreatePresetRequest struct {
	Name    string            `json:"name" binding:"required"`
	Mapping map[string]string `json:"mapping" binding:"required"`
}

// UpdatePresetRequest replaces the mapping of an existing preset
type UpdatePresetRequest struct {
	Mapping map[string]string `json:"mapping" binding:"required"`
}

// PresetResponse is the API representation of a mapping preset
type PresetResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Mapping   MappingResponse `json:"mapping"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toPresetResponse(preset *slip.MappingPreset) *PresetResponse {
	return &PresetResponse{
		ID:        preset.ID.String(),
		Name:      preset.Name,
		Mapping:   toMappingResponse(preset.Mapping),
		CreatedAt: preset.CreatedAt,
		UpdatedAt: preset.UpdatedAt,
	}
}

// ImportRecordResponse is the API representation of one history entry
type ImportRecordResponse struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	TotalRows     int       `json:"totalRows"`
	ProcessedRows int       `json:"processedRows"`
	SkippedRows   int       `json:"skippedRows"`
	DocumentCount int       `json:"documentCount"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"errorMessage,omitempty"`
	CompletedAt   time.Time `json:"completedAt"`
}

func toImportRecordResponse(record *slip.ImportRecord) *ImportRecordResponse {
	return &ImportRecordResponse{
		ID:            record.ID.String(),
		Filename:      record.Filename,
		TotalRows:     record.TotalRows,
		ProcessedRows: record.ProcessedRows,
		SkippedRows:   record.SkippedRows,
		DocumentCount: record.DocumentCount,
		Status:        string(record.Status),
		ErrorMessage:  record.ErrorMessage,
		CompletedAt:   record.CompletedAt,
	}
}
