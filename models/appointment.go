package models

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusPending   AppointmentStatus = "pending"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is the booked fact. Buffers are denormalized from the service in
// force at creation time so that later edits to the service never change the
// outcome of historical conflict checks; EffectiveStart/EffectiveEnd are the
// start/end expanded by those buffers, precomputed for overlap queries.
// Cancellation is a status transition, never a delete, so the timeline stays
// auditable.
type Appointment struct {
	ID             string `bson:"id" json:"id"`
	Owner          string `bson:"owner" json:"owner"`
	ProfessionalID string `bson:"professionalId" json:"professionalId"`
	ServiceID      string `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ClientID       string `bson:"clientId" json:"clientId"`
	ClientName     string `bson:"clientName" json:"clientName"`

	Start           time.Time `bson:"start" json:"start"` // UTC instant
	DurationMin     int       `bson:"durationMin" json:"durationMin"`
	BufferBeforeMin int       `bson:"bufferBeforeMin" json:"bufferBeforeMin"`
	BufferAfterMin  int       `bson:"bufferAfterMin" json:"bufferAfterMin"`
	EffectiveStart  time.Time `bson:"effectiveStart" json:"effectiveStart"`
	EffectiveEnd    time.Time `bson:"effectiveEnd" json:"effectiveEnd"`

	Status         AppointmentStatus `bson:"status" json:"status"`
	CreatedBy      string            `bson:"createdBy" json:"createdBy"` // "agent" or "operator"
	IdempotencyKey string            `bson:"idempotencyKey,omitempty" json:"idempotencyKey,omitempty"`

	CancelReason string     `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// End returns the UTC end instant of the booked time (without buffers).
func (a *Appointment) End() time.Time {
	return a.Start.Add(time.Duration(a.DurationMin) * time.Minute)
}

// CountsTowardCapacity reports whether the appointment occupies capacity.
// Cancelled appointments are inert history.
func (a *Appointment) CountsTowardCapacity() bool {
	return a.Status == StatusConfirmed || a.Status == StatusPending
}

// EffectiveRange returns the buffered occupied range, re-deriving it from the
// stored buffers when the precomputed fields are missing (legacy documents).
func (a *Appointment) EffectiveRange() (time.Time, time.Time) {
	if !a.EffectiveStart.IsZero() && !a.EffectiveEnd.IsZero() {
		return a.EffectiveStart, a.EffectiveEnd
	}
	start := a.Start.Add(-time.Duration(a.BufferBeforeMin) * time.Minute)
	end := a.End().Add(time.Duration(a.BufferAfterMin) * time.Minute)
	return start, end
}
