package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatcal/chatcal/internal/gcal"
	"github.com/chatcal/chatcal/internal/llm"
	"github.com/chatcal/chatcal/internal/timeutil"
)

// CalendarService is the calendar collaborator the analyzer dispatches
// against. *gcal.Client satisfies it.
type CalendarService interface {
	ListCalendars() ([]gcal.CalendarInfo, error)
	ListEventsInRange(calendarID string, timeMin, timeMax time.Time) ([]gcal.Event, error)
	CreateEvent(calendarID string, input gcal.EventInput) (*gcal.CreatedEvent, error)
	DeleteEvent(calendarID, eventID string) error
}

// TurnStore persists completed exchanges for audit/display.
type TurnStore interface {
	AppendTurn(sessionID, userText, assistantText string) error
}

// Analyzer turns free-form chat messages into calendar actions or plain
// replies. One Analyzer owns one conversation; callers must not invoke
// ProcessMessage concurrently on the same instance.
type Analyzer struct {
	completer llm.Completer
	calendar  CalendarService
	conv      *Conversation
	store     TurnStore
	sessionID string

	loc           *time.Location
	lookaheadDays int
	now           func() time.Time
	log           zerolog.Logger

	// calendars caches the last successful listing; refreshed every message.
	// A stale cache degrades to the primary calendar, never to a wrong target.
	calendars []gcal.CalendarInfo
}

// AnalyzerConfig configures an Analyzer.
type AnalyzerConfig struct {
	Completer     llm.Completer
	Calendar      CalendarService
	Store         TurnStore // optional
	SessionID     string
	History       []Turn // already-persisted turns to restore, oldest first
	WindowSize    int
	LookaheadDays int
	Location      *time.Location // defaults to time.Local
	Now           func() time.Time
	Logger        zerolog.Logger
}

// NewAnalyzer creates an analyzer, replaying cfg.History into the
// conversation. Restored turns are not re-persisted; only new messages
// reach the store.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	conv := NewConversation(cfg.WindowSize)
	for _, turn := range cfg.History {
		conv.Append(turn)
	}

	return &Analyzer{
		completer:     cfg.Completer,
		calendar:      cfg.Calendar,
		conv:          conv,
		store:         cfg.Store,
		sessionID:     cfg.SessionID,
		loc:           loc,
		lookaheadDays: cfg.LookaheadDays,
		now:           now,
		log:           cfg.Logger.With().Str("component", "analyzer").Logger(),
	}
}

// History returns the full conversation so far, oldest first.
func (a *Analyzer) History() []Turn {
	return a.conv.All()
}

// ProcessMessage runs one message through the full pipeline and returns the
// display text. It never fails: every error is converted to a human-readable
// reply, and exactly one turn is appended to the conversation either way.
func (a *Analyzer) ProcessMessage(ctx context.Context, userText string) string {
	response := a.analyze(ctx, userText)

	a.conv.Append(Turn{User: userText, Assistant: response})
	if a.store != nil {
		if err := a.store.AppendTurn(a.sessionID, userText, response); err != nil {
			a.log.Warn().Err(err).Msg("failed to persist conversation turn")
		}
	}

	return response
}

func (a *Analyzer) analyze(ctx context.Context, userText string) string {
	now := a.now().In(a.loc)

	calendars := a.refreshCalendars()

	prompt := ComposeSystemPrompt(now, WeekdayWindow(now), renderCalendarList(calendars), a.conv.Render())

	raw, err := a.completer.Complete(ctx, prompt, userText)
	if err != nil {
		a.log.Error().Err(err).Msg("text generation failed")
		return "I'm sorry, I encountered an error processing your message. Please try again."
	}

	resp, err := Extract(raw)
	if err != nil {
		return missingFieldsReply(err)
	}

	switch resp.Kind {
	case KindCreate:
		spec, err := NormalizeCreate(resp.Fields, calendars, a.log)
		if err != nil {
			return missingFieldsReply(err)
		}
		return a.createEvent(spec)

	case KindDelete:
		criterion, err := NormalizeDelete(resp.Fields)
		if err != nil {
			return "To delete an event I need at least one of its date, time, or title."
		}
		return a.resolveDelete(criterion, calendars)

	default:
		return resp.Text
	}
}

// refreshCalendars fetches the calendar list, keeping the previous listing
// when the backend is unavailable.
func (a *Analyzer) refreshCalendars() []gcal.CalendarInfo {
	calendars, err := a.calendar.ListCalendars()
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to refresh calendar list, using cached")
		return a.calendars
	}
	a.calendars = calendars
	return calendars
}

// createEvent dispatches a normalized spec against the calendar backend and
// renders the outcome.
func (a *Analyzer) createEvent(spec *CreateEventSpec) string {
	start, err := timeutil.CombineDateTime(spec.Date, spec.Time, a.loc)
	if err != nil {
		return fmt.Sprintf("I couldn't understand when the event should be (%v). Please rephrase the date and time.", err)
	}
	end := start.Add(time.Duration(spec.DurationMinutes) * time.Minute)

	created, err := a.calendar.CreateEvent(spec.CalendarID, gcal.EventInput{
		Summary:             spec.Title,
		Description:         spec.Description,
		Location:            spec.Location,
		StartTime:           start,
		EndTime:             end,
		Attendees:           spec.Attendees,
		NotificationMinutes: spec.NotificationMinutes,
	})
	if err != nil {
		a.log.Error().Err(err).Str("title", spec.Title).Msg("failed to create event")
		return fmt.Sprintf("Failed to create the event: %v", err)
	}

	a.log.Info().Str("title", created.Summary).Str("event_id", created.ID).Msg("created calendar event")
	return formatCreatedEvent(created)
}

// missingFieldsReply converts a MissingFieldsError into a request for the
// missing details; any other error gets the generic apology.
func missingFieldsReply(err error) string {
	var missing *MissingFieldsError
	if errors.As(err, &missing) {
		return fmt.Sprintf("I need a bit more information to schedule that. Please tell me the event's %s.",
			strings.Join(missing.Fields, ", "))
	}
	return "I'm sorry, I encountered an error processing your message. Please try again."
}
