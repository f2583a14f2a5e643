package timeutil

import (
	"fmt"
	"time"
)

var defaultLocation = time.UTC

// ResolveLocation returns the location for a timezone name with UTC fallback.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return defaultLocation, true
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return defaultLocation, true
	}
	return loc, false
}

// The generator is told to emit YYYY-MM-DD and 24-hour HH:MM, but it does
// not always comply, so dispatch accepts the same handful of layouts the
// original web form tolerated.
var (
	dateLayouts = []string{
		"2006-01-02",
		"01/02/2006",
		"January 2, 2006",
		"2 January 2006",
	}
	timeLayouts = []string{
		"15:04",
		"3:04 PM",
		"3:04PM",
	}
)

// ParseDate parses a calendar date string in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date value is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}

// ParseClock parses a time-of-day string and returns hour and minute.
func ParseClock(value string) (int, int, error) {
	if value == "" {
		return 0, 0, fmt.Errorf("time value is required")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, fmt.Errorf("unable to parse time: %s", value)
}

// CombineDateTime parses a date and a time-of-day into a single instant in loc.
func CombineDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseClock(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc), nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDisplayDate renders a date for user-facing messages, e.g. "June 3, 2024".
func FormatDisplayDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// FormatDisplayTime renders a clock time for user-facing messages, e.g. "02:30 PM".
func FormatDisplayTime(t time.Time) string {
	return t.Format("03:04 PM")
}
