package scheduling

import (
	"context"
	"errors"
	"sort"
	"time"

	professionalRepo "agendly/database/repository/professional"
	serviceRepo "agendly/database/repository/service"
	"agendly/models"
	"agendly/utils"

	"go.uber.org/zap"
)

const (
	// DefaultStepMinutes is the slot grid step when the caller gives none.
	DefaultStepMinutes = 15
	// MinDurationMinutes is the shortest bookable duration.
	MinDurationMinutes = 5

	// conflictFetchMargin widens the appointment query around the day so that
	// buffers on neighbouring bookings reaching across midnight are seen by
	// the conflict detector.
	conflictFetchMargin = 6 * time.Hour
)

// SlotsRequest describes one slot-listing query. Exactly one of ServiceID and
// DurationMin must be set.
type SlotsRequest struct {
	Date           string // local calendar date, "2006-01-02"
	ServiceID      string
	DurationMin    int
	ProfessionalID string // optional: restrict to one professional
	StepMin        int    // grid step, defaults to DefaultStepMinutes
}

// bookingShape is the resolved duration/buffer/skill profile of a request.
type bookingShape struct {
	serviceID      string
	durationMin    int
	bufferBefore   int
	bufferAfter    int
	requiredSkills []string
}

// resolveShape validates the service/duration choice and loads the service
// when one is referenced. An explicit duration is only accepted when no
// service is given.
func (e *DefaultEngine) resolveShape(ctx context.Context, owner, serviceID string, durationMin int) (*bookingShape, error) {
	switch {
	case serviceID != "" && durationMin != 0:
		return nil, NewInvalidInput("serviceId and durationMin are mutually exclusive")
	case serviceID != "":
		svc, err := e.Services.GetByID(ctx, owner, serviceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrNotFound) {
				return nil, NewNotFound("service %s not found", serviceID)
			}
			return nil, NewStoreUnavailable(err, "failed to load service %s", serviceID)
		}
		return &bookingShape{
			serviceID:      svc.ID,
			durationMin:    svc.DurationMin,
			bufferBefore:   svc.BufferBeforeMin,
			bufferAfter:    svc.BufferAfterMin,
			requiredSkills: svc.RequiredSkills,
		}, nil
	case durationMin >= MinDurationMinutes:
		return &bookingShape{durationMin: durationMin}, nil
	default:
		return nil, NewInvalidInput("durationMin must be at least %d when no service is given", MinDurationMinutes)
	}
}

// GenerateSlots computes the bookable UTC instants for one date. Every
// eligible professional appears in the result, with an empty slot list when
// fully booked or unavailable, so callers can tell "considered but full" from
// "not eligible".
func (e *DefaultEngine) GenerateSlots(ctx context.Context, owner string, req SlotsRequest) ([]models.ProfessionalSlots, error) {
	logger := utils.GetLogger()

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	step := req.StepMin
	if step == 0 {
		step = DefaultStepMinutes
	}
	if step < 1 {
		return nil, NewInvalidInput("stepMin must be positive")
	}
	shape, err := e.resolveShape(ctx, owner, req.ServiceID, req.DurationMin)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if e.Cache != nil {
		cacheKey = e.Cache.Key(ctx, owner, req.Date, req.ProfessionalID, shape.serviceID, shape.durationMin, step)
		if cached, ok := e.Cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	professionals, err := e.eligibleProfessionals(ctx, owner, req.ProfessionalID, shape.requiredSkills)
	if err != nil {
		return nil, err
	}

	results := make([]models.ProfessionalSlots, 0, len(professionals))
	for i := range professionals {
		p := &professionals[i]
		slots, err := e.slotsForProfessional(ctx, owner, p, date, shape, step)
		if err != nil {
			return nil, err
		}
		results = append(results, models.ProfessionalSlots{
			ProfessionalID:   p.ID,
			ProfessionalName: p.Name,
			Slots:            slots,
		})
	}

	// Stable output order keeps repeated queries byte-identical.
	sort.Slice(results, func(i, j int) bool {
		if results[i].ProfessionalName == results[j].ProfessionalName {
			return results[i].ProfessionalID < results[j].ProfessionalID
		}
		return results[i].ProfessionalName < results[j].ProfessionalName
	})

	if e.Cache != nil {
		e.Cache.Set(ctx, cacheKey, results)
	}
	logger.Debug("generated slots",
		zap.String("owner", owner), zap.String("date", req.Date), zap.Int("professionals", len(results)))
	return results, nil
}

// eligibleProfessionals returns the active professionals matching the skill
// requirements, optionally narrowed to a single requested one. An inactive
// professional is never eligible, even when requested by ID.
func (e *DefaultEngine) eligibleProfessionals(ctx context.Context, owner, professionalID string, requiredSkills []string) ([]models.Professional, error) {
	var candidates []models.Professional
	if professionalID != "" {
		p, err := e.Professionals.GetByID(ctx, owner, professionalID)
		if err != nil {
			if errors.Is(err, professionalRepo.ErrNotFound) {
				return nil, NewNotFound("professional %s not found", professionalID)
			}
			return nil, NewStoreUnavailable(err, "failed to load professional %s", professionalID)
		}
		candidates = []models.Professional{*p}
	} else {
		list, err := e.Professionals.ListActive(ctx, owner)
		if err != nil {
			return nil, NewStoreUnavailable(err, "failed to list professionals")
		}
		candidates = list
	}

	eligible := make([]models.Professional, 0, len(candidates))
	for _, p := range candidates {
		if !p.Active || !p.HasSkills(requiredSkills) {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible, nil
}

// slotsForProfessional walks every availability window of one professional in
// step increments and keeps the candidates the conflict detector admits.
// Identical UTC instants produced by overlapping templates are deduplicated.
func (e *DefaultEngine) slotsForProfessional(ctx context.Context, owner string, p *models.Professional, date Date, shape *bookingShape, step int) ([]time.Time, error) {
	windows, err := e.ResolveAvailability(ctx, owner, p.ID, date)
	if err != nil {
		return nil, err
	}
	slots := make([]time.Time, 0)
	if len(windows) == 0 {
		return slots, nil
	}

	// One appointment fetch covers all windows of the day.
	from := MinuteToUTC(windows[0].Date, windows[0].Loc, windows[0].Start)
	to := from
	for _, w := range windows {
		if s := MinuteToUTC(w.Date, w.Loc, w.Start); s.Before(from) {
			from = s
		}
		if t := MinuteToUTC(w.Date, w.Loc, w.End); t.After(to) {
			to = t
		}
	}
	existing, err := e.Appointments.ListOverlapping(ctx, owner, p.ID, from.Add(-conflictFetchMargin), to.Add(conflictFetchMargin))
	if err != nil {
		return nil, NewStoreUnavailable(err, "failed to load appointments for professional %s", p.ID)
	}

	duration := time.Duration(shape.durationMin) * time.Minute
	capacity := p.EffectiveCapacity()
	seen := make(map[int64]struct{})

	for _, w := range windows {
		for m := w.Start; m+shape.durationMin <= w.End; m += step {
			start := MinuteToUTC(w.Date, w.Loc, m)
			if _, dup := seen[start.Unix()]; dup {
				continue
			}
			if !HasCapacity(existing, start, start.Add(duration), shape.bufferBefore, shape.bufferAfter, capacity) {
				continue
			}
			seen[start.Unix()] = struct{}{}
			slots = append(slots, start)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots, nil
}
