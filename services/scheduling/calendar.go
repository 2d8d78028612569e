package scheduling

import (
	"time"
)

// DateLayout is the wire format for local calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component and no timezone. All local
// scheduling data (templates, time off) is keyed by Date plus an IANA zone
// plus minutes-of-day, never by an ambiguous local datetime string.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, NewInvalidInput("invalid date %q, want YYYY-MM-DD", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf returns the calendar date of an instant in the given location.
func DateOf(t time.Time, loc *time.Location) Date {
	local := t.In(loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// StartOfDay returns the instant of local midnight for this date.
func (d Date) StartOfDay(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Location resolves an IANA timezone name. Unknown names yield an
// invalid_input error; callers that own fallback policy use UTC instead of
// failing the whole computation.
func Location(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, NewInvalidInput("unknown IANA timezone %q", name)
	}
	return loc, nil
}

// DayBounds returns the UTC instants of local midnight and the next local
// midnight. Across daylight-saving transitions the two are 23 or 25 hours
// apart; everything downstream works off these instants, never off wall-clock
// arithmetic.
func DayBounds(d Date, loc *time.Location) (time.Time, time.Time) {
	start := d.StartOfDay(loc)
	next := time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, loc)
	return start.UTC(), next.UTC()
}

// DayLengthMinutes returns the number of real minutes in the local day
// (1380, 1440 or 1500 depending on DST).
func DayLengthMinutes(d Date, loc *time.Location) int {
	start, end := DayBounds(d, loc)
	return int(end.Sub(start) / time.Minute)
}

// WeekdayIndex returns the local weekday of a date using the 0=Sunday ..
// 6=Saturday convention the availability data is stored in. Go's time.Weekday
// already numbers Sunday as 0; this is the single place that mapping lives,
// so no caller ever recomputes it.
func WeekdayIndex(d Date, loc *time.Location) int {
	return int(d.StartOfDay(loc).Weekday())
}

// MinuteToUTC converts a count of minutes elapsed since local midnight into
// the corresponding UTC instant. Minutes are elapsed time, not wall-clock
// labels: on a 25-hour day the full 0..1500 range maps to distinct instants,
// and this conversion alone is responsible for correctness across DST.
func MinuteToUTC(d Date, loc *time.Location, minute int) time.Time {
	return d.StartOfDay(loc).Add(time.Duration(minute) * time.Minute).UTC()
}

// UTCToMinute is the inverse of MinuteToUTC for the same date and location.
func UTCToMinute(t time.Time, d Date, loc *time.Location) int {
	return int(t.Sub(d.StartOfDay(loc)) / time.Minute)
}
