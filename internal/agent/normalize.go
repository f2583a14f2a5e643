package agent

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chatcal/chatcal/internal/gcal"
)

const (
	defaultDurationMinutes     = 60
	defaultNotificationMinutes = 10
)

// ErrInvalidCriterion means a delete block carried no identifying field.
var ErrInvalidCriterion = errors.New("delete request needs at least one of date, time, or title")

// CreateEventSpec is a fully normalized, validated event-creation request.
type CreateEventSpec struct {
	Title               string
	Date                string // YYYY-MM-DD
	Time                string // HH:MM, 24-hour
	DurationMinutes     int
	NotificationMinutes int
	Description         string
	Location            string
	Attendees           []string
	CalendarID          string
}

// DeleteCriterion identifies which event(s) a delete request refers to.
// Every present field must hold for a candidate event to match.
type DeleteCriterion struct {
	Date  string // YYYY-MM-DD, optional
	Time  string // HH:MM, optional
	Title string // case-insensitive substring, optional
}

// NormalizeCreate converts an extracted create-field mapping into a typed
// spec, applying defaults for malformed optional fields. Required fields are
// checked again so a spec can never leave here incomplete.
func NormalizeCreate(fields map[string]string, calendars []gcal.CalendarInfo, log zerolog.Logger) (*CreateEventSpec, error) {
	var missing []string
	for _, name := range requiredCreateFields {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	return &CreateEventSpec{
		Title:               strings.TrimSpace(fields["title"]),
		Date:                strings.TrimSpace(fields["date"]),
		Time:                strings.TrimSpace(fields["time"]),
		DurationMinutes:     parseIntOrDefault(fields["duration_minutes"], defaultDurationMinutes, 1),
		NotificationMinutes: parseIntOrDefault(fields["notification_minutes"], defaultNotificationMinutes, 0),
		Description:         strings.TrimSpace(fields["description"]),
		Location:            strings.TrimSpace(fields["location"]),
		Attendees:           parseAttendees(fields["attendees"]),
		CalendarID:          resolveCalendarID(fields["calendar_id"], calendars, log),
	}, nil
}

// NormalizeDelete converts an extracted delete-field mapping into a typed
// criterion. No coercion beyond trimming; at least one field must be present.
func NormalizeDelete(fields map[string]string) (*DeleteCriterion, error) {
	criterion := &DeleteCriterion{
		Date:  strings.TrimSpace(fields["date"]),
		Time:  strings.TrimSpace(fields["time"]),
		Title: strings.TrimSpace(fields["title"]),
	}

	if criterion.Date == "" && criterion.Time == "" && criterion.Title == "" {
		return nil, ErrInvalidCriterion
	}
	return criterion, nil
}

// parseIntOrDefault degrades malformed or out-of-range integers to the
// default rather than failing the whole request.
func parseIntOrDefault(raw string, def, min int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return def
	}
	return n
}

// parseAttendees splits a comma-separated attendee list and keeps only
// tokens that look like email addresses. Everything else is noise from the
// generator and is dropped silently. Repeated addresses collapse to their
// first occurrence so nobody is invited twice.
func parseAttendees(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var attendees []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" || !strings.Contains(token, "@") {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		attendees = append(attendees, token)
	}
	return attendees
}

// resolveCalendarID maps a raw calendar reference to a known calendar id.
// Absent, blank, or unrecognized references degrade to the primary calendar;
// an unknown calendar must never fail the request.
func resolveCalendarID(raw string, calendars []gcal.CalendarInfo, log zerolog.Logger) string {
	primary := primaryCalendarID(calendars)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return primary
	}

	for _, cal := range calendars {
		if cal.ID == raw || strings.EqualFold(cal.Summary, raw) {
			return cal.ID
		}
	}

	log.Warn().
		Str("calendar_id", raw).
		Str("fallback", primary).
		Msg("unrecognized calendar reference, falling back to primary")
	return primary
}

// primaryCalendarID returns the primary calendar's id, or the literal
// "primary" alias when the calendar list is unavailable.
func primaryCalendarID(calendars []gcal.CalendarInfo) string {
	for _, cal := range calendars {
		if cal.Primary {
			return cal.ID
		}
	}
	return "primary"
}
