package utils

import (
	"fmt"
	"time"

	// IANA zones must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"
)

const (
	// ClockFormat is the wall-clock layout used for schedule and reminder times.
	ClockFormat = "15:04"
	// DateFormat is the calendar date layout.
	DateFormat = "2006-01-02"
)

// ParseClock parses a strict HH:MM string and returns minutes since midnight.
func ParseClock(timeStr string) (int, error) {
	if len(timeStr) != len(ClockFormat) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", timeStr)
	}
	t, err := time.Parse(ClockFormat, timeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidClock reports whether timeStr is a valid HH:MM value.
func ValidClock(timeStr string) bool {
	_, err := ParseClock(timeStr)
	return err == nil
}

// AtClock returns the calendar day of date at the given minutes since midnight,
// in date's location.
func AtClock(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}

// StartOfDay returns midnight of date's calendar day in date's location.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DayBounds returns [start, end) of date's calendar day.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := StartOfDay(date)
	return start, start.AddDate(0, 0, 1)
}

// DayKey identifies a calendar date independent of location as YYYYMMDD.
func DayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// LoadLocation loads an IANA timezone. Empty or "Local" means the process timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ParseDateInLocation parses YYYY-MM-DD as midnight in loc.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}
