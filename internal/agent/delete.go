package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/chatcal/chatcal/internal/gcal"
	"github.com/chatcal/chatcal/internal/timeutil"
)

const defaultDeleteLookaheadDays = 14

// resolveDelete lists candidate events for a criterion, matches them, and
// either deletes the single match, reports none found, or halts for
// disambiguation when several events qualify.
func (a *Analyzer) resolveDelete(criterion *DeleteCriterion, calendars []gcal.CalendarInfo) string {
	calendarID := primaryCalendarID(calendars)

	from, to, err := a.deleteScope(criterion)
	if err != nil {
		return fmt.Sprintf("I couldn't understand the date %q. Please use a format like 2024-06-03.", criterion.Date)
	}

	events, err := a.calendar.ListEventsInRange(calendarID, from, to)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to list events for deletion")
		return fmt.Sprintf("I couldn't look up your events: %v", err)
	}

	matches := matchEvents(criterion, events, a.loc)

	switch len(matches) {
	case 0:
		return "No matching events found."
	case 1:
		target := matches[0]
		if err := a.calendar.DeleteEvent(calendarID, target.ID); err != nil {
			a.log.Error().Err(err).Str("event_id", target.ID).Msg("failed to delete event")
			return fmt.Sprintf("I couldn't delete %q: %v", target.Title, err)
		}
		return fmt.Sprintf("🗑️ Deleted %q (%s at %s).",
			target.Title,
			timeutil.FormatDisplayDate(target.StartTime),
			timeutil.FormatDisplayTime(target.StartTime),
		)
	default:
		return formatAmbiguousMatches(matches)
	}
}

// deleteScope returns the listing window for a criterion: the criterion's
// single day when a date is given, otherwise a lookahead window from the
// start of today.
func (a *Analyzer) deleteScope(criterion *DeleteCriterion) (time.Time, time.Time, error) {
	if criterion.Date != "" {
		day, err := timeutil.ParseDate(criterion.Date, a.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start := timeutil.StartOfDay(day)
		return start, start.AddDate(0, 0, 1), nil
	}

	lookahead := a.lookaheadDays
	if lookahead <= 0 {
		lookahead = defaultDeleteLookaheadDays
	}
	start := timeutil.StartOfDay(a.now().In(a.loc))
	return start, start.AddDate(0, 0, lookahead), nil
}

// matchEvents filters candidates against the criterion. Every present field
// must hold: exact start date, exact start time at minute granularity, and a
// case-insensitive title substring.
func matchEvents(criterion *DeleteCriterion, events []gcal.Event, loc *time.Location) []gcal.Event {
	var matches []gcal.Event
	for _, ev := range events {
		if matchesCriterion(criterion, ev, loc) {
			matches = append(matches, ev)
		}
	}
	return matches
}

func matchesCriterion(criterion *DeleteCriterion, ev gcal.Event, loc *time.Location) bool {
	start := ev.StartTime.In(loc)

	if criterion.Date != "" && start.Format("2006-01-02") != criterion.Date {
		return false
	}
	if criterion.Time != "" && start.Format("15:04") != criterion.Time {
		return false
	}
	if criterion.Title != "" &&
		!strings.Contains(strings.ToLower(ev.Title), strings.ToLower(criterion.Title)) {
		return false
	}
	return true
}
