package pkg

import (
	"testing"
	"time"

	"github.com/magiconair/properties/assert"
)

func TestDayHourMinute(t *testing.T) {
	tests := []struct {
		seconds   int
		days      int
		hours     int
		minutes   int
		formatted string
	}{
		{0, 0, 0, 0, "0d 0h 0m"},
		{59, 0, 0, 0, "0d 0h 0m"},
		{60, 0, 0, 1, "0d 0h 1m"},
		{3600, 0, 1, 0, "0d 1h 0m"},
		{10800, 0, 3, 0, "0d 3h 0m"},
		{28799, 0, 7, 59, "0d 7h 59m"},
		{28800, 1, 0, 0, "1d 0h 0m"},
		{2*28800 + 5400 + 59, 2, 1, 30, "2d 1h 30m"},
	}
	for _, test := range tests {
		days, hours, minutes := DayHourMinute(test.seconds)
		assert.Equal(t, days, test.days, test.formatted)
		assert.Equal(t, hours, test.hours, test.formatted)
		assert.Equal(t, minutes, test.minutes, test.formatted)
		assert.Equal(t, hours < 8, true)
		assert.Equal(t, minutes < 60, true)
		assert.Equal(t, FormatDayHourMinute(test.seconds), test.formatted)
	}
}

func TestHours(t *testing.T) {
	assert.Equal(t, Hours(0), 0.0)
	assert.Equal(t, Hours(3600), 1.0)
	assert.Equal(t, Hours(5400), 1.5)
	assert.Equal(t, Hours(900), 0.25)
	assert.Equal(t, Hours(1200), 0.33)
	assert.Equal(t, Hours(2400), 0.67)
	assert.Equal(t, Hours(3599), 1.0)
	// Halves round away from zero.
	assert.Equal(t, Hours(18), 0.01)
}

func TestParseMonth(t *testing.T) {
	from, to, err := ParseMonth("2024-12")
	assert.Equal(t, err, nil)
	assert.Equal(t, from, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, to, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	_, _, err = ParseMonth("12/2024")
	assert.Matches(t, err.Error(), "^invalid month")
}

func TestParseStartedNaive(t *testing.T) {
	started, err := ParseStarted("2024-11-30T23:30:00.000-0500", nil)
	assert.Equal(t, err, nil)
	assert.Equal(t, started, time.Date(2024, time.November, 30, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, started.Format(IsoYearMonth), "2024-11")

	_, err = ParseStarted("2024-11-30", nil)
	assert.Matches(t, err.Error(), "too short")
}

func TestParseStartedLocation(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	started, err := ParseStarted("2024-11-30T23:30:00.000-0500", berlin)
	assert.Equal(t, err, nil)
	assert.Equal(t, started.Format(NaiveDateTime), "2024-12-01T05:30:00")
	assert.Equal(t, started.Format(IsoYearMonth), "2024-12")

	_, err = ParseStarted("2024-11-30T23:30:00", berlin)
	assert.Matches(t, err.Error(), "^invalid started timestamp")
}
