package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.March, Day: 2}, d)
	assert.Equal(t, "2026-03-02", d.String())

	for _, bad := range []string{"", "02-03-2026", "2026-3-2", "2026-03-02T00:00:00Z", "not a date"} {
		_, err := ParseDate(bad)
		require.Error(t, err, "input %q", bad)
		assert.Equal(t, CodeInvalidInput, CodeOf(err))
	}
}

func TestLocation(t *testing.T) {
	loc, err := Location("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = Location("Europe/Madrid")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", loc.String())

	_, err = Location("Not/AZone")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidInput, CodeOf(err))
}

func TestWeekdayIndex(t *testing.T) {
	madrid := mustLocation(t, "Europe/Madrid")

	// 2026-03-01 is a Sunday, 2026-03-02 a Monday.
	assert.Equal(t, 0, WeekdayIndex(Date{2026, time.March, 1}, madrid))
	assert.Equal(t, 1, WeekdayIndex(Date{2026, time.March, 2}, madrid))
	assert.Equal(t, 6, WeekdayIndex(Date{2026, time.March, 7}, madrid))

	// The same calendar date can fall on different weekdays in zones far
	// enough apart, but the weekday is always computed in the template's zone.
	assert.Equal(t, 1, WeekdayIndex(Date{2026, time.March, 2}, mustLocation(t, "Pacific/Auckland")))
}

func TestDayBoundsAndLengthAcrossDST(t *testing.T) {
	madrid := mustLocation(t, "Europe/Madrid")

	// Plain 24-hour day.
	assert.Equal(t, 1440, DayLengthMinutes(Date{2026, time.March, 2}, madrid))

	// Spring-forward day: 2:00 jumps to 3:00, 23 real hours.
	assert.Equal(t, 1380, DayLengthMinutes(Date{2025, time.March, 30}, madrid))

	// Fall-back day: 25 real hours.
	assert.Equal(t, 1500, DayLengthMinutes(Date{2025, time.October, 26}, madrid))

	start, end := DayBounds(Date{2026, time.March, 2}, madrid)
	assert.Equal(t, time.Date(2026, time.March, 1, 23, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 2, 23, 0, 0, 0, time.UTC), end)
}

func TestMinuteToUTC(t *testing.T) {
	madrid := mustLocation(t, "Europe/Madrid")

	// CET in early March: 08:00 local is 07:00 UTC.
	d := Date{2026, time.March, 2}
	assert.Equal(t, time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC), MinuteToUTC(d, madrid, 480))

	// Minutes are elapsed time since local midnight. On the spring-forward
	// day 540 elapsed minutes land at wall-clock 10:00 CEST, which is 08:00 UTC.
	dst := Date{2025, time.March, 30}
	assert.Equal(t, time.Date(2025, time.March, 30, 8, 0, 0, 0, time.UTC), MinuteToUTC(dst, madrid, 540))
}

func TestMinuteRoundTripOnDSTDays(t *testing.T) {
	madrid := mustLocation(t, "Europe/Madrid")

	for _, d := range []Date{
		{2026, time.March, 2},   // plain day
		{2025, time.March, 30},  // 23-hour day
		{2025, time.October, 26}, // 25-hour day
	} {
		dayLen := DayLengthMinutes(d, madrid)
		seen := make(map[int64]bool)
		for m := 0; m < dayLen; m += 15 {
			instant := MinuteToUTC(d, madrid, m)
			require.Equal(t, m, UTCToMinute(instant, d, madrid), "date %s minute %d", d, m)
			require.False(t, seen[instant.Unix()], "date %s minute %d maps to a duplicate instant", d, m)
			seen[instant.Unix()] = true
		}
	}
}

func TestDateOf(t *testing.T) {
	madrid := mustLocation(t, "Europe/Madrid")

	// 23:30 UTC on March 1st is already March 2nd in Madrid.
	instant := time.Date(2026, time.March, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, Date{2026, time.March, 2}, DateOf(instant, madrid))
	assert.Equal(t, Date{2026, time.March, 1}, DateOf(instant, time.UTC))
}
