package scheduling

import (
	"context"
	"sync"
	"time"

	appointmentRepo "agendly/database/repository/appointment"
	assignmentRepo "agendly/database/repository/assignment"
	professionalRepo "agendly/database/repository/professional"
	serviceRepo "agendly/database/repository/service"
	templateRepo "agendly/database/repository/template"
	timeoffRepo "agendly/database/repository/timeoff"
	"agendly/models"
)

// In-memory repository fakes backing the engine tests. The appointment fake
// mirrors the store's insert-then-verify create under a mutex so concurrent
// booking tests exercise the same capacity semantics as the real store.

type fakeProfessionalRepo struct {
	items []models.Professional
}

func (f *fakeProfessionalRepo) GetByID(_ context.Context, owner, id string) (*models.Professional, error) {
	for i := range f.items {
		if f.items[i].Owner == owner && f.items[i].ID == id {
			p := f.items[i]
			return &p, nil
		}
	}
	return nil, professionalRepo.ErrNotFound
}

func (f *fakeProfessionalRepo) ListActive(_ context.Context, owner string) ([]models.Professional, error) {
	var out []models.Professional
	for _, p := range f.items {
		if p.Owner == owner && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeServiceRepo struct {
	items []models.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, owner, id string) (*models.Service, error) {
	for i := range f.items {
		if f.items[i].Owner == owner && f.items[i].ID == id {
			s := f.items[i]
			return &s, nil
		}
	}
	return nil, serviceRepo.ErrNotFound
}

type fakeTemplateRepo struct {
	items []models.AvailabilityTemplate
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, owner, id string) (*models.AvailabilityTemplate, error) {
	for i := range f.items {
		if f.items[i].Owner == owner && f.items[i].ID == id {
			t := f.items[i]
			return &t, nil
		}
	}
	return nil, templateRepo.ErrNotFound
}

type fakeAssignmentRepo struct {
	items []models.Assignment
}

func (f *fakeAssignmentRepo) ListCovering(_ context.Context, owner, professionalID, date string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range f.items {
		if a.Owner == owner && a.ProfessionalID == professionalID && a.Covers(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTimeOffRepo struct {
	items []models.TimeOff
}

func (f *fakeTimeOffRepo) ListForDate(_ context.Context, owner, professionalID, date string) ([]models.TimeOff, error) {
	var out []models.TimeOff
	for _, t := range f.items {
		if t.Owner != owner || t.Date != date {
			continue
		}
		if t.IsGlobal() || t.ProfessionalID == professionalID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	items []models.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, owner, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].Owner == owner && f.items[i].ID == id {
			a := f.items[i]
			return &a, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeAppointmentRepo) GetByIdempotencyKey(_ context.Context, owner, key string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].Owner == owner && f.items[i].IdempotencyKey == key {
			a := f.items[i]
			return &a, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeAppointmentRepo) ListOverlapping(_ context.Context, owner, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for i := range f.items {
		a := f.items[i]
		if a.Owner != owner || a.ProfessionalID != professionalID || !a.CountsTowardCapacity() {
			continue
		}
		effStart, effEnd := a.EffectiveRange()
		if effStart.Before(to) && from.Before(effEnd) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CreateWithCapacityCheck(ctx context.Context, appt *models.Appointment, capacity int) error {
	if err := f.insert(ctx, appt); err != nil {
		return err
	}
	return f.verifyCapacity(appt.ID, capacity)
}

func (f *fakeAppointmentRepo) insert(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if appt.IdempotencyKey != "" {
		for i := range f.items {
			if f.items[i].Owner == appt.Owner && f.items[i].IdempotencyKey == appt.IdempotencyKey {
				return appointmentRepo.ErrDuplicateIdempotencyKey
			}
		}
	}
	f.items = append(f.items, *appt)
	return nil
}

// verifyCapacity mirrors the store's ranked recount: only appointments
// inserted before the fresh one count against it, so of two racers contending
// for the last unit of capacity exactly the earlier insert survives.
func (f *fakeAppointmentRepo) verifyCapacity(id string, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := -1
	for i := range f.items {
		if f.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return appointmentRepo.ErrNotFound
	}
	appt := f.items[idx]

	overlapping := 0
	for i := 0; i < idx; i++ {
		a := &f.items[i]
		if a.Owner != appt.Owner || a.ProfessionalID != appt.ProfessionalID || !a.CountsTowardCapacity() {
			continue
		}
		aStart, aEnd := a.EffectiveRange()
		if aStart.Before(appt.EffectiveEnd) && appt.EffectiveStart.Before(aEnd) {
			overlapping++
		}
	}
	if overlapping >= capacity {
		f.items = append(f.items[:idx], f.items[idx+1:]...)
		return appointmentRepo.ErrCapacityExceeded
	}
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, owner, id string, status models.AppointmentStatus, reason string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].Owner == owner && f.items[i].ID == id {
			f.items[i].Status = status
			f.items[i].UpdatedAt = time.Now().UTC()
			if status == models.StatusCancelled {
				now := time.Now().UTC()
				f.items[i].CancelReason = reason
				f.items[i].CancelledAt = &now
			}
			a := f.items[i]
			return &a, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeAppointmentRepo) ExpireStalePending(_ context.Context, cutoff time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	var owners []string
	for i := range f.items {
		if f.items[i].Status == models.StatusPending && f.items[i].CreatedAt.Before(cutoff) {
			f.items[i].Status = models.StatusCancelled
			if !seen[f.items[i].Owner] {
				seen[f.items[i].Owner] = true
				owners = append(owners, f.items[i].Owner)
			}
		}
	}
	return owners, nil
}

var (
	_ professionalRepo.ProfessionalRepository = (*fakeProfessionalRepo)(nil)
	_ serviceRepo.ServiceRepository           = (*fakeServiceRepo)(nil)
	_ templateRepo.TemplateRepository         = (*fakeTemplateRepo)(nil)
	_ assignmentRepo.AssignmentRepository     = (*fakeAssignmentRepo)(nil)
	_ timeoffRepo.TimeOffRepository           = (*fakeTimeOffRepo)(nil)
	_ appointmentRepo.AppointmentRepository   = (*fakeAppointmentRepo)(nil)
)

// fixture bundles an engine with its fakes for direct seeding in tests.
type fixture struct {
	profs       *fakeProfessionalRepo
	services    *fakeServiceRepo
	templates   *fakeTemplateRepo
	assignments *fakeAssignmentRepo
	timeoff     *fakeTimeOffRepo
	appts       *fakeAppointmentRepo
	engine      *DefaultEngine
}

func newFixture() *fixture {
	f := &fixture{
		profs:       &fakeProfessionalRepo{},
		services:    &fakeServiceRepo{},
		templates:   &fakeTemplateRepo{},
		assignments: &fakeAssignmentRepo{},
		timeoff:     &fakeTimeOffRepo{},
		appts:       &fakeAppointmentRepo{},
	}
	f.engine = &DefaultEngine{
		Professionals: f.profs,
		Services:      f.services,
		Templates:     f.templates,
		Assignments:   f.assignments,
		TimeOff:       f.timeoff,
		Appointments:  f.appts,
	}
	return f
}

const testOwner = "tenant-1"

// seedWeekday gives professional p one covering assignment to a template with
// a single window on the given weekday, in the given zone.
func (f *fixture) seedWeekday(professionalID, timezone string, dayOfWeek, startMinute, endMinute int) {
	tplID := "tpl-" + professionalID
	f.templates.items = append(f.templates.items, models.AvailabilityTemplate{
		ID:       tplID,
		Owner:    testOwner,
		Name:     "weekly",
		Timezone: timezone,
		Windows: []models.Window{
			{DayOfWeek: dayOfWeek, StartMinute: startMinute, EndMinute: endMinute},
		},
	})
	f.assignments.items = append(f.assignments.items, models.Assignment{
		ID:             "asg-" + professionalID,
		Owner:          testOwner,
		ProfessionalID: professionalID,
		TemplateID:     tplID,
		StartDate:      "2020-01-01",
	})
}

func intPtr(v int) *int { return &v }
