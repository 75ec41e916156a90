package slip

import (
	"strings"
	"time"

	"github.com/slipdesk/backend/internal/domain/shared"
)

const maxPresetNameLength = 100

// MappingPreset is a saved column mapping, so a recurring export format
// only needs to be mapped once.
type MappingPreset struct {
	shared.BaseEntity
	Name    string
	Mapping FieldMapping
}

// NewMappingPreset creates a new mapping preset
func NewMappingPreset(name string, mapping FieldMapping) (*MappingPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRESET_NAME", "preset name must not be empty")
	}
	if len(name) > maxPresetNameLength {
		return nil, shared.NewDomainError("INVALID_PRESET_NAME", "preset name too long")
	}
	if mapping.MappedCount() == 0 {
		return nil, shared.NewDomainError("EMPTY_PRESET", "preset must map at least one field")
	}

	for field := range mapping {
		if !field.IsValid() {
			return nil, shared.NewDomainError("INVALID_PRESET_FIELD", "unknown logical field: "+string(field))
		}
	}

	return &MappingPreset{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Mapping:    mapping.Clone(),
	}, nil
}

// UpdateMapping replaces the stored mapping
func (p *MappingPreset) UpdateMapping(mapping FieldMapping) error {
	if mapping.MappedCount() == 0 {
		return shared.NewDomainError("EMPTY_PRESET", "preset must map at least one field")
	}

	p.Mapping = mapping.Clone()
	p.UpdatedAt = time.Now()

	return nil
}
