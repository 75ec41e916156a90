package slip

import (
	"context"

	"github.com/google/uuid"
)

// MappingPresetRepository defines the interface for preset persistence
type MappingPresetRepository interface {
	// FindByID finds a preset by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MappingPreset, error)

	// FindByName finds a preset by its unique name
	FindByName(ctx context.Context, name string) (*MappingPreset, error)

	// FindAll returns all presets
	FindAll(ctx context.Context) ([]MappingPreset, error)

	// Save saves a preset (insert or update)
	Save(ctx context.Context, preset *MappingPreset) error

	// Delete deletes a preset by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImportRecordRepository defines the interface for import history persistence
type ImportRecordRepository interface {
	// FindByID finds a record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ImportRecord, error)

	// FindRecent returns the most recent records, newest first
	FindRecent(ctx context.Context, limit int) ([]ImportRecord, error)

	// Save saves a record
	Save(ctx context.Context, record *ImportRecord) error

	// Delete deletes a record by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
