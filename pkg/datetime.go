package pkg

import (
	"fmt"
	"math"
	"time"
)

const (
	IsoYearMonthDaySlash = "2006/01/02"
	IsoYearMonthDay      = "2006-01-02"
	IsoYearMonth         = "2006-01"
	IsoDateTime          = "2006-01-02T15:04:05.000-0700"
	IsoDateTimeMinute    = "2006-01-02 15:04"
	// NaiveDateTime covers the leading 19 characters of a tracker timestamp.
	NaiveDateTime = "2006-01-02T15:04:05"
	FileTimestamp = "20060102_150405"
)

const (
	// SecondsPerWorkday follows the 8 hour working day convention of Jira.
	SecondsPerWorkday = 8 * SecondsPerHour
	SecondsPerHour    = 3600
	SecondsPerMinute  = 60
)

// GetTimeRange returns the first instant of the month and the first instant of the following one.
func GetTimeRange(year int, month time.Month) (time.Time, time.Time) {
	toYear := year
	toMonth := month + 1
	if month == time.December {
		toYear++
		toMonth = time.January
	}

	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), time.Date(toYear, toMonth, 1, 0, 0, 0, 0, time.UTC)
}

// ParseMonth parses a YYYY-MM string into its time range.
func ParseMonth(month string) (time.Time, time.Time, error) {
	date, err := time.Parse(IsoYearMonth, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}
	from, to := GetTimeRange(date.Year(), date.Month())
	return from, to, nil
}

// ParseStarted parses the started timestamp of a worklog.
// Without a location only the first 19 characters are significant and the result is a naive
// time in UTC. With a location the offset is honoured and the result is converted into it.
func ParseStarted(started string, location *time.Location) (time.Time, error) {
	if location != nil {
		date, err := time.Parse(IsoDateTime, started)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid started timestamp %q: %w", started, err)
		}
		return date.In(location), nil
	}
	if len(started) < len(NaiveDateTime) {
		return time.Time{}, fmt.Errorf("invalid started timestamp %q: too short", started)
	}
	date, err := time.Parse(NaiveDateTime, started[:len(NaiveDateTime)])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid started timestamp %q: %w", started, err)
	}
	return date, nil
}

// DayHourMinute splits seconds into working days, hours and minutes.
// The sub-minute remainder is dropped.
func DayHourMinute(seconds int) (days, hours, minutes int) {
	days = seconds / SecondsPerWorkday
	seconds %= SecondsPerWorkday
	hours = seconds / SecondsPerHour
	seconds %= SecondsPerHour
	minutes = seconds / SecondsPerMinute
	return days, hours, minutes
}

// Hours converts seconds into decimal hours rounded half away from zero to two places.
func Hours(seconds int) float64 {
	return math.Round(float64(seconds)/SecondsPerHour*100) / 100
}

// FormatDayHourMinute renders seconds as "1d 2h 30m".
func FormatDayHourMinute(seconds int) string {
	days, hours, minutes := DayHourMinute(seconds)
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}
