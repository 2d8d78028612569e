package scheduling

import (
	"context"
	"errors"
	"time"

	templateRepo "agendly/database/repository/template"
	"agendly/utils"

	"go.uber.org/zap"
)

// DayWindow is a surviving availability window for one professional on one
// date, expressed in minutes from local midnight in the template's own
// timezone.
type DayWindow struct {
	Date  Date
	Loc   *time.Location
	Start int // minutes from local midnight
	End   int
}

// ResolveAvailability computes the availability windows of a professional for
// one calendar date: template windows of every covering assignment, minus
// time off. Each assignment's template is resolved independently in the
// template's own timezone, because two concurrent assignments may use
// templates in different zones and the weekday of the same calendar date can
// differ between them. An empty result is a normal business outcome, not an
// error.
func (e *DefaultEngine) ResolveAvailability(ctx context.Context, owner, professionalID string, date Date) ([]DayWindow, error) {
	logger := utils.GetLogger()

	assignments, err := e.Assignments.ListCovering(ctx, owner, professionalID, date.String())
	if err != nil {
		return nil, NewStoreUnavailable(err, "failed to load assignments")
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	timeOff, err := e.TimeOff.ListForDate(ctx, owner, professionalID, date.String())
	if err != nil {
		return nil, NewStoreUnavailable(err, "failed to load time off")
	}

	// Windows are grouped per template so that two assignments sharing a
	// template do not duplicate its windows.
	type templateDay struct {
		loc     *time.Location
		windows []MinuteRange
	}
	byTemplate := make(map[string]*templateDay)

	for _, a := range assignments {
		if _, seen := byTemplate[a.TemplateID]; seen {
			continue
		}
		tpl, err := e.Templates.GetByID(ctx, owner, a.TemplateID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrNotFound) {
				logger.Warn("assignment references missing template",
					zap.String("assignmentId", a.ID), zap.String("templateId", a.TemplateID))
				continue
			}
			return nil, NewStoreUnavailable(err, "failed to load template %s", a.TemplateID)
		}

		loc, err := Location(tpl.Timezone)
		if err != nil {
			// Bad zone data must not take slot listing down; fall back to UTC.
			logger.Warn("template has unknown timezone, falling back to UTC",
				zap.String("templateId", tpl.ID), zap.String("timezone", tpl.Timezone))
			loc = time.UTC
		}

		weekday := WeekdayIndex(date, loc)
		var windows []MinuteRange
		for _, w := range tpl.WindowsForDay(weekday) {
			windows = append(windows, MinuteRange{Start: w.StartMinute, End: w.EndMinute})
		}
		byTemplate[a.TemplateID] = &templateDay{loc: loc, windows: windows}
	}

	var result []DayWindow
	for _, td := range byTemplate {
		if len(td.windows) == 0 {
			continue
		}
		dayLen := DayLengthMinutes(date, td.loc)

		var cuts []MinuteRange
		for _, t := range timeOff {
			if t.IsWholeDay() {
				cuts = append(cuts, MinuteRange{Start: 0, End: dayLen})
				continue
			}
			cuts = append(cuts, MinuteRange{Start: *t.StartMinute, End: *t.EndMinute})
		}

		for _, r := range Subtract(Merge(td.windows), cuts, MinViableSlotMinutes) {
			result = append(result, DayWindow{Date: date, Loc: td.loc, Start: r.Start, End: r.End})
		}
	}
	return result, nil
}
