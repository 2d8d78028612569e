package timeoffRepo

import (
	"context"

	"agendly/models"
)

// TimeOffRepository defines data access for time-off exceptions.
type TimeOffRepository interface {
	// ListForDate retrieves time-off records for the given local calendar date
	// that are either business-wide or scoped to the given professional.
	ListForDate(ctx context.Context, owner, professionalID, date string) ([]models.TimeOff, error)
}
