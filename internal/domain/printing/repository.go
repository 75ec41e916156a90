package printing

import (
	"context"

	"github.com/google/uuid"
)

// SlipTemplateRepository defines the interface for template persistence
type SlipTemplateRepository interface {
	// FindByID finds a template by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SlipTemplate, error)

	// FindByName finds a template by its unique name
	FindByName(ctx context.Context, name string) (*SlipTemplate, error)

	// FindAll returns all templates
	FindAll(ctx context.Context) ([]SlipTemplate, error)

	// FindDefault returns the default template, or nil when none is set
	FindDefault(ctx context.Context) (*SlipTemplate, error)

	// Save saves a template (insert or update)
	Save(ctx context.Context, template *SlipTemplate) error

	// Delete deletes a template by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearDefault clears the default flag on all templates
	ClearDefault(ctx context.Context) error
}
