package models

// Window is a recurring local time-of-day range on one weekday.
type Window struct {
	DayOfWeek   int `bson:"dayOfWeek" json:"dayOfWeek"`     // 0=Sunday .. 6=Saturday
	StartMinute int `bson:"startMinute" json:"startMinute"` // minutes from local midnight (e.g., 480 for 8:00 AM)
	EndMinute   int `bson:"endMinute" json:"endMinute"`     // minutes from local midnight, exclusive
}

// AvailabilityTemplate is a reusable weekly schedule owned by a tenant.
// Templates are replaced wholesale on edit; assignments reference them by ID.
type AvailabilityTemplate struct {
	ID       string   `bson:"id" json:"id"`
	Owner    string   `bson:"owner" json:"owner"`
	Name     string   `bson:"name" json:"name"`
	Timezone string   `bson:"timezone" json:"timezone"` // IANA zone name (e.g., "Europe/Madrid")
	Windows  []Window `bson:"windows" json:"windows"`
}

// WindowsForDay returns the template windows falling on the given weekday index.
func (t *AvailabilityTemplate) WindowsForDay(dayOfWeek int) []Window {
	var out []Window
	for _, w := range t.Windows {
		if w.DayOfWeek == dayOfWeek {
			out = append(out, w)
		}
	}
	return out
}
