package scheduling

import (
	"context"

	appointmentRepo "agendly/database/repository/appointment"
	assignmentRepo "agendly/database/repository/assignment"
	professionalRepo "agendly/database/repository/professional"
	serviceRepo "agendly/database/repository/service"
	templateRepo "agendly/database/repository/template"
	timeoffRepo "agendly/database/repository/timeoff"
	"agendly/models"
)

// Engine computes bookable slots for a tenant and validates appointment
// creation against the same availability and capacity invariants.
type Engine interface {
	// GenerateSlots computes the conflict-free bookable UTC instants for one
	// calendar date, per eligible professional. The read path is stateless
	// and side-effect free.
	GenerateSlots(ctx context.Context, owner string, req SlotsRequest) ([]models.ProfessionalSlots, error)
	// CreateAppointment re-checks availability and capacity at write time and
	// persists the appointment as confirmed.
	CreateAppointment(ctx context.Context, owner string, req CreateAppointmentRequest) (*models.Appointment, error)
	// CancelAppointment transitions an appointment to cancelled. Rescheduling
	// is cancel-old plus create-new, never an in-place move.
	CancelAppointment(ctx context.Context, owner, id, reason string) (*models.Appointment, error)
	// GetAppointment retrieves a single appointment.
	GetAppointment(ctx context.Context, owner, id string) (*models.Appointment, error)
}

// DefaultEngine is the production scheduling engine. All state is read from
// the document store per call; the engine itself is stateless and safe for
// unbounded concurrent reads.
type DefaultEngine struct {
	Professionals professionalRepo.ProfessionalRepository
	Services      serviceRepo.ServiceRepository
	Templates     templateRepo.TemplateRepository
	Assignments   assignmentRepo.AssignmentRepository
	TimeOff       timeoffRepo.TimeOffRepository
	Appointments  appointmentRepo.AppointmentRepository
	Cache         *SlotCache // optional; nil disables slot-result caching
}
