package scheduling

import (
	"context"
	"errors"
	"time"

	appointmentRepo "agendly/database/repository/appointment"
	professionalRepo "agendly/database/repository/professional"
	"agendly/models"
	"agendly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateAppointmentRequest describes one booking attempt. Exactly one of
// ServiceID and DurationMin must be set; Start is a UTC instant.
type CreateAppointmentRequest struct {
	ClientID       string
	ClientName     string
	ProfessionalID string
	ServiceID      string
	DurationMin    int
	Start          time.Time
	CreatedBy      string // "agent" or "operator"
	IdempotencyKey string // optional; enables safe retry of the create
}

// CreateAppointment validates the booking against the server's current view
// of the schedule and persists it as confirmed. The capacity check runs twice:
// once before the insert against fresh reads, and once more inside the
// repository's insert-then-verify create, which closes the race between
// listing slots and booking one.
func (e *DefaultEngine) CreateAppointment(ctx context.Context, owner string, req CreateAppointmentRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if req.ClientID == "" || req.ProfessionalID == "" {
		return nil, NewInvalidInput("clientId and professionalId are required")
	}
	if req.Start.IsZero() {
		return nil, NewInvalidInput("start instant is required")
	}
	shape, err := e.resolveShape(ctx, owner, req.ServiceID, req.DurationMin)
	if err != nil {
		return nil, err
	}

	// A retried create with the same key returns the original appointment
	// instead of booking twice.
	if req.IdempotencyKey != "" {
		existing, err := e.Appointments.GetByIdempotencyKey(ctx, owner, req.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewStoreUnavailable(err, "failed to check idempotency key")
		}
	}

	prof, err := e.Professionals.GetByID(ctx, owner, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, NewNotFound("professional %s not found", req.ProfessionalID)
		}
		return nil, NewStoreUnavailable(err, "failed to load professional %s", req.ProfessionalID)
	}
	if !prof.Active {
		return nil, NewInvalidInput("professional %s is not bookable", prof.ID)
	}
	if !prof.HasSkills(shape.requiredSkills) {
		return nil, NewInvalidInput("professional %s lacks the required skills", prof.ID)
	}

	start := req.Start.UTC()
	end := start.Add(time.Duration(shape.durationMin) * time.Minute)
	effStart, effEnd := EffectiveRange(start, end, shape.bufferBefore, shape.bufferAfter)
	capacity := prof.EffectiveCapacity()

	// Pre-check against the server's current reads so obviously conflicting
	// requests are rejected without writing anything.
	existing, err := e.Appointments.ListOverlapping(ctx, owner, prof.ID, effStart, effEnd)
	if err != nil {
		return nil, NewStoreUnavailable(err, "failed to load appointments for professional %s", prof.ID)
	}
	if !HasCapacity(existing, start, end, shape.bufferBefore, shape.bufferAfter, capacity) {
		return nil, NewScheduleConflict("professional %s has no capacity at %s", prof.ID, start.Format(time.RFC3339))
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		Owner:           owner,
		ProfessionalID:  prof.ID,
		ServiceID:       shape.serviceID,
		ClientID:        req.ClientID,
		ClientName:      req.ClientName,
		Start:           start,
		DurationMin:     shape.durationMin,
		BufferBeforeMin: shape.bufferBefore,
		BufferAfterMin:  shape.bufferAfter,
		EffectiveStart:  effStart,
		EffectiveEnd:    effEnd,
		Status:          models.StatusConfirmed,
		CreatedBy:       req.CreatedBy,
		IdempotencyKey:  req.IdempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := e.Appointments.CreateWithCapacityCheck(ctx, appt, capacity); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrCapacityExceeded):
			return nil, NewScheduleConflict("professional %s has no capacity at %s", prof.ID, start.Format(time.RFC3339))
		case errors.Is(err, appointmentRepo.ErrDuplicateIdempotencyKey):
			// A concurrent retry with the same key won the insert between our
			// lookup and this create; return its appointment.
			existing, gerr := e.Appointments.GetByIdempotencyKey(ctx, owner, req.IdempotencyKey)
			if gerr != nil {
				return nil, NewStoreUnavailable(gerr, "failed to resolve idempotency key collision")
			}
			return existing, nil
		default:
			return nil, NewStoreUnavailable(err, "failed to create appointment")
		}
	}

	if e.Cache != nil {
		e.Cache.Bump(ctx, owner)
	}
	logger.Info("appointment created",
		zap.String("owner", owner), zap.String("appointmentId", appt.ID),
		zap.String("professionalId", prof.ID), zap.Time("start", start))
	return appt, nil
}

// CancelAppointment transitions an appointment to cancelled. Cancelling an
// already-cancelled appointment is a no-op returning the record unchanged;
// the history is never deleted.
func (e *DefaultEngine) CancelAppointment(ctx context.Context, owner, id, reason string) (*models.Appointment, error) {
	appt, err := e.GetAppointment(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.StatusCancelled {
		return appt, nil
	}

	updated, err := e.Appointments.UpdateStatus(ctx, owner, id, models.StatusCancelled, reason)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFound("appointment %s not found", id)
		}
		return nil, NewStoreUnavailable(err, "failed to cancel appointment %s", id)
	}

	if e.Cache != nil {
		e.Cache.Bump(ctx, owner)
	}
	utils.GetLogger().Info("appointment cancelled",
		zap.String("owner", owner), zap.String("appointmentId", id), zap.String("reason", reason))
	return updated, nil
}

// GetAppointment retrieves one appointment for the tenant.
func (e *DefaultEngine) GetAppointment(ctx context.Context, owner, id string) (*models.Appointment, error) {
	appt, err := e.Appointments.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFound("appointment %s not found", id)
		}
		return nil, NewStoreUnavailable(err, "failed to load appointment %s", id)
	}
	return appt, nil
}
