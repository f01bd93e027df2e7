package utils

import (
	"fmt"
	"time"

	"github.com/mholloway/cadence/internal/constants"
)

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// MinutesBetween returns the whole minutes from startStr to endStr, both in
// HH:MM format. End times before the start are an error; overnight spans are
// not supported.
func MinutesBetween(startStr, endStr string) (int, error) {
	start, err := ParseTime(startStr)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", startStr, err)
	}
	end, err := ParseTime(endStr)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", endStr, err)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end time %s is before start time %s", endStr, startStr)
	}
	return int(end.Sub(start).Minutes()), nil
}

// DateRange returns every date from start through end inclusive.
func DateRange(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ISOWeekBounds returns the Monday and Sunday of the given ISO week.
func ISOWeekBounds(year, week int) (time.Time, time.Time) {
	// Jan 4 is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := jan4.AddDate(0, 0, -(weekday-1)).AddDate(0, 0, (week-1)*7)
	return monday, monday.AddDate(0, 0, 6)
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

// CombineDateAndTime builds a timestamp from a date string (YYYY-MM-DD) and a
// time string (HH:MM) in UTC.
func CombineDateAndTime(dateStr, timeStr string) (time.Time, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
