package agent

import (
	"fmt"
	"strings"

	"github.com/chatcal/chatcal/internal/gcal"
	"github.com/chatcal/chatcal/internal/timeutil"
)

// formatCreatedEvent renders a confirmation message for a created event.
func formatCreatedEvent(event *gcal.CreatedEvent) string {
	var b strings.Builder

	b.WriteString("✅ Event created successfully!\n\n")
	fmt.Fprintf(&b, "📅 %s\n", event.Summary)
	fmt.Fprintf(&b, "📆 %s\n", timeutil.FormatDisplayDate(event.StartTime))
	fmt.Fprintf(&b, "🕒 %s - %s\n",
		timeutil.FormatDisplayTime(event.StartTime),
		timeutil.FormatDisplayTime(event.EndTime),
	)

	if event.Location != "" {
		fmt.Fprintf(&b, "📍 %s\n", event.Location)
	}
	if event.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", event.Description)
	}
	if len(event.Attendees) > 0 {
		fmt.Fprintf(&b, "👥 Attendees: %s\n", strings.Join(event.Attendees, ", "))
	}
	if event.HTMLLink != "" {
		fmt.Fprintf(&b, "\n🔗 %s", event.HTMLLink)
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatAmbiguousMatches renders the disambiguation list shown when a delete
// request matches more than one event.
func formatAmbiguousMatches(matches []gcal.Event) string {
	var b strings.Builder

	b.WriteString("I found more than one matching event:\n")
	for i, ev := range matches {
		fmt.Fprintf(&b, "%d. %s (%s at %s)\n",
			i+1,
			ev.Title,
			timeutil.FormatDisplayDate(ev.StartTime),
			timeutil.FormatDisplayTime(ev.StartTime),
		)
	}
	b.WriteString("Please be more specific about which one to delete.")

	return b.String()
}

// renderCalendarList formats the available calendars for the system prompt,
// marking the primary one the way the selection rules reference it.
func renderCalendarList(calendars []gcal.CalendarInfo) string {
	if len(calendars) == 0 {
		return "No calendar list available; use the primary calendar."
	}

	var b strings.Builder
	for _, cal := range calendars {
		fmt.Fprintf(&b, "- %s (id: %s)", cal.Summary, cal.ID)
		if cal.Primary {
			b.WriteString(" (Primary Calendar)")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
