package templateRepo

import (
	"context"
	"errors"

	"agendly/models"
)

// ErrNotFound is returned when no template matches the query.
var ErrNotFound = errors.New("availability template not found")

// TemplateRepository defines data access for availability templates.
type TemplateRepository interface {
	// GetByID retrieves a template owned by the given tenant.
	GetByID(ctx context.Context, owner, id string) (*models.AvailabilityTemplate, error)
}
