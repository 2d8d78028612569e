package assignmentRepo

import (
	"context"

	"agendly/models"
)

// AssignmentRepository defines data access for template assignments.
type AssignmentRepository interface {
	// ListCovering retrieves all assignments for a professional whose date
	// range covers the given local calendar date ("2006-01-02").
	ListCovering(ctx context.Context, owner, professionalID, date string) ([]models.Assignment, error)
}
