package gcal

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// EventInput is the input for creating a calendar event.
type EventInput struct {
	Summary             string
	Description         string
	Location            string
	StartTime           time.Time
	EndTime             time.Time
	Attendees           []string // attendee email addresses
	NotificationMinutes int      // popup reminder lead time
}

// Event represents a single existing calendar event.
type Event struct {
	ID        string
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

// CreatedEvent describes an event that was just inserted.
type CreatedEvent struct {
	ID          string
	HTMLLink    string
	Summary     string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Attendees   []string
}

// CreateEvent inserts a new event and returns the created event details
func (c *Client) CreateEvent(calendarID string, input EventInput) (*CreatedEvent, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	// RFC3339 format includes timezone offset, so Google Calendar can infer the timezone
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.StartTime.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: input.EndTime.Format(time.RFC3339),
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(input.NotificationMinutes)},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if len(input.Attendees) > 0 {
		attendees := make([]*calendar.EventAttendee, len(input.Attendees))
		for i, email := range input.Attendees {
			attendees[i] = &calendar.EventAttendee{Email: email}
		}
		event.Attendees = attendees
	}

	// SendUpdates sends notifications to attendees
	created, err := c.service.Events.Insert(calendarID, event).SendUpdates("all").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	result := &CreatedEvent{
		ID:          created.Id,
		HTMLLink:    created.HtmlLink,
		Summary:     created.Summary,
		Description: created.Description,
		Location:    created.Location,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Attendees:   input.Attendees,
	}

	// Prefer the backend's resolved times when they parse cleanly.
	if created.Start != nil && created.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, created.Start.DateTime); err == nil {
			result.StartTime = t
		}
	}
	if created.End != nil && created.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, created.End.DateTime); err == nil {
			result.EndTime = t
		}
	}

	return result, nil
}

// DeleteEvent deletes an event from the calendar
func (c *Client) DeleteEvent(calendarID, eventID string) error {
	if c.service == nil {
		return fmt.Errorf("calendar service not initialized")
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	if err := c.service.Events.Delete(calendarID, eventID).Do(); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// ListEventsInRange returns events in a time window, ordered by start time.
func (c *Client) ListEventsInRange(calendarID string, timeMin, timeMax time.Time) ([]Event, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if timeMax.Before(timeMin) {
		return nil, fmt.Errorf("invalid range: time_max is before time_min")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	var result []Event
	pageToken := ""

	for {
		call := c.service.Events.List(calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			ShowDeleted(false).
			OrderBy("startTime")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events in range: %w", err)
		}

		for _, item := range events.Items {
			if item == nil || item.Status == "cancelled" {
				continue
			}
			ev, err := eventFromItem(item, timeMin.Location())
			if err != nil {
				// Skip malformed events rather than failing the whole listing.
				continue
			}
			result = append(result, ev)
		}

		if events.NextPageToken == "" {
			break
		}
		pageToken = events.NextPageToken
	}

	return result, nil
}

func eventFromItem(item *calendar.Event, loc *time.Location) (Event, error) {
	if item.Start == nil || item.End == nil {
		return Event{}, fmt.Errorf("event is missing start or end")
	}

	// All-day events use Date instead of DateTime.
	if item.Start.Date != "" {
		start, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		if err != nil {
			return Event{}, fmt.Errorf("failed to parse all-day start date: %w", err)
		}
		end, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
		if err != nil {
			return Event{}, fmt.Errorf("failed to parse all-day end date: %w", err)
		}
		return Event{ID: item.Id, Title: item.Summary, StartTime: start, EndTime: end}, nil
	}

	if item.Start.DateTime == "" || item.End.DateTime == "" {
		return Event{}, fmt.Errorf("event datetime is missing")
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return Event{}, fmt.Errorf("failed to parse start datetime: %w", err)
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return Event{}, fmt.Errorf("failed to parse end datetime: %w", err)
	}

	return Event{ID: item.Id, Title: item.Summary, StartTime: start, EndTime: end}, nil
}
