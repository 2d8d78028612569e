package serviceRepo

import (
	"context"
	"errors"

	"agendly/models"
)

// ErrNotFound is returned when no service matches the query.
var ErrNotFound = errors.New("service not found")

// ServiceRepository defines data access for services.
type ServiceRepository interface {
	// GetByID retrieves a service owned by the given tenant.
	GetByID(ctx context.Context, owner, id string) (*models.Service, error)
}
