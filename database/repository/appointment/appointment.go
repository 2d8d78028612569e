package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"agendly/models"
)

var (
	// ErrNotFound is returned when no appointment matches the query.
	ErrNotFound = errors.New("appointment not found")
	// ErrCapacityExceeded is returned by CreateWithCapacityCheck when the
	// professional's capacity would be exceeded at the requested instant.
	ErrCapacityExceeded = errors.New("professional capacity exceeded")
	// ErrDuplicateIdempotencyKey is returned when an insert collides with an
	// appointment already holding the same (owner, idempotencyKey).
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
)

// AppointmentRepository defines data access for appointments.
type AppointmentRepository interface {
	// GetByID retrieves an appointment owned by the given tenant.
	GetByID(ctx context.Context, owner, id string) (*models.Appointment, error)
	// GetByIdempotencyKey retrieves the appointment previously created with
	// the given client-supplied key, or ErrNotFound.
	GetByIdempotencyKey(ctx context.Context, owner, key string) (*models.Appointment, error)
	// ListOverlapping retrieves confirmed/pending appointments of a
	// professional whose effective (buffered) range intersects [from, to).
	ListOverlapping(ctx context.Context, owner, professionalID string, from, to time.Time) ([]models.Appointment, error)
	// CreateWithCapacityCheck atomically inserts the appointment and verifies
	// the professional's capacity still holds, ranking concurrent inserts by
	// insertion order so exactly one racer survives contention for the last
	// unit of capacity. On violation the insert is compensated with a delete
	// and ErrCapacityExceeded is returned; a reused idempotency key yields
	// ErrDuplicateIdempotencyKey.
	CreateWithCapacityCheck(ctx context.Context, appt *models.Appointment, capacity int) error
	// UpdateStatus transitions an appointment to the given status and returns
	// the updated record.
	UpdateStatus(ctx context.Context, owner, id string, status models.AppointmentStatus, reason string) (*models.Appointment, error)
	// ExpireStalePending cancels pending appointments created before the
	// cutoff and returns the owners whose schedules changed.
	ExpireStalePending(ctx context.Context, cutoff time.Time) ([]string, error)
}
