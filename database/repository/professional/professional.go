package professionalRepo

import (
	"context"
	"errors"

	"agendly/models"
)

// ErrNotFound is returned when no professional matches the query.
var ErrNotFound = errors.New("professional not found")

// ProfessionalRepository defines data access for professionals.
type ProfessionalRepository interface {
	// GetByID retrieves a professional owned by the given tenant.
	GetByID(ctx context.Context, owner, id string) (*models.Professional, error)
	// ListActive retrieves all active professionals of a tenant.
	ListActive(ctx context.Context, owner string) ([]models.Professional, error)
}
