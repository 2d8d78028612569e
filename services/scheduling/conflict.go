package scheduling

import (
	"time"

	"agendly/models"
)

// EffectiveRange expands a booked time range by its service buffers. The
// buffer time is not bookable by a third party but must not overlap any other
// booking's effective range either.
func EffectiveRange(start, end time.Time, bufferBeforeMin, bufferAfterMin int) (time.Time, time.Time) {
	return start.Add(-time.Duration(bufferBeforeMin) * time.Minute),
		end.Add(time.Duration(bufferAfterMin) * time.Minute)
}

// HasCapacity reports whether a candidate booking fits next to the existing
// appointments of a professional. The candidate's effective range uses the
// buffers of the service being booked; each existing appointment contributes
// its own stored buffers, i.e. the buffers of the service in force when it
// was booked. Overlap is half-open: touching ranges do not conflict. The
// candidate fits iff strictly fewer than capacity effective ranges overlap it.
func HasCapacity(existing []models.Appointment, candStart, candEnd time.Time, bufferBeforeMin, bufferAfterMin, capacity int) bool {
	effStart, effEnd := EffectiveRange(candStart, candEnd, bufferBeforeMin, bufferAfterMin)

	overlapping := 0
	for i := range existing {
		a := &existing[i]
		if !a.CountsTowardCapacity() {
			continue
		}
		aStart, aEnd := a.EffectiveRange()
		if aStart.Before(effEnd) && effStart.Before(aEnd) {
			overlapping++
			if overlapping >= capacity {
				return false
			}
		}
	}
	return overlapping < capacity
}
