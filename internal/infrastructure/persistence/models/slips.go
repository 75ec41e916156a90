package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/slipdesk/backend/internal/domain/slip"
)

// MappingPresetModel is the GORM model for the mapping_presets table.
// The field mapping is stored as a JSON object keyed by logical field.
type MappingPresetModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex:idx_mapping_presets_name"`
	Mapping string `gorm:"type:text;not null"`
}

// TableName returns the table name for MappingPresetModel
func (MappingPresetModel) TableName() string {
	return "mapping_presets"
}

// ToDomain converts MappingPresetModel to domain MappingPreset
func (m *MappingPresetModel) ToDomain() (*slip.MappingPreset, error) {
	var mapping slip.FieldMapping
	if err := json.Unmarshal([]byte(m.Mapping), &mapping); err != nil {
		return nil, fmt.Errorf("corrupt mapping for preset %q: %w", m.Name, err)
	}

	return &slip.MappingPreset{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Mapping:    mapping,
	}, nil
}

// MappingPresetModelFromDomain creates a MappingPresetModel from domain MappingPreset
func MappingPresetModelFromDomain(p *slip.MappingPreset) (*MappingPresetModel, error) {
	raw, err := json.Marshal(p.Mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mapping for preset %q: %w", p.Name, err)
	}

	model := &MappingPresetModel{
		Name:    p.Name,
		Mapping: string(raw),
	}
	model.FromDomainBaseEntity(p.BaseEntity)
	return model, nil
}

// ImportRecordModel is the GORM model for the import_records table
type ImportRecordModel struct {
	BaseModel
	Filename      string    `gorm:"type:varchar(255);not null"`
	TotalRows     int       `gorm:"column:total_rows;not null"`
	ProcessedRows int       `gorm:"column:processed_rows;not null"`
	SkippedRows   int       `gorm:"column:skipped_rows;not null"`
	DocumentCount int       `gorm:"column:document_count;not null"`
	Status        string    `gorm:"type:varchar(20);not null"`
	ErrorMessage  string    `gorm:"column:error_message;type:text"`
	CompletedAt   time.Time `gorm:"column:completed_at;not null;index"`
}

// TableName returns the table name for ImportRecordModel
func (ImportRecordModel) TableName() string {
	return "import_records"
}

// ToDomain converts ImportRecordModel to domain ImportRecord
func (m *ImportRecordModel) ToDomain() *slip.ImportRecord {
	return &slip.ImportRecord{
		BaseEntity:    m.BaseModel.ToDomain(),
		Filename:      m.Filename,
		TotalRows:     m.TotalRows,
		ProcessedRows: m.ProcessedRows,
		SkippedRows:   m.SkippedRows,
		DocumentCount: m.DocumentCount,
		Status:        slip.ImportStatus(m.Status),
		ErrorMessage:  m.ErrorMessage,
		CompletedAt:   m.CompletedAt,
	}
}

// ImportRecordModelFromDomain creates an ImportRecordModel from domain ImportRecord
func ImportRecordModelFromDomain(r *slip.ImportRecord) *ImportRecordModel {
	model := &ImportRecordModel{
		Filename:      r.Filename,
		TotalRows:     r.TotalRows,
		ProcessedRows: r.ProcessedRows,
		SkippedRows:   r.SkippedRows,
		DocumentCount: r.DocumentCount,
		Status:        string(r.Status),
		ErrorMessage:  r.ErrorMessage,
		CompletedAt:   r.CompletedAt,
	}
	model.FromDomainBaseEntity(r.BaseEntity)
	return model
}
