package agent

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/chatcal/chatcal/internal/gcal"
)

// MockCompleter is a mock text-generation collaborator.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

func (m *MockCompleter) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockCalendarService is a mock calendar collaborator.
type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) ListCalendars() ([]gcal.CalendarInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gcal.CalendarInfo), args.Error(1)
}

func (m *MockCalendarService) ListEventsInRange(calendarID string, timeMin, timeMax time.Time) ([]gcal.Event, error) {
	args := m.Called(calendarID, timeMin, timeMax)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gcal.Event), args.Error(1)
}

func (m *MockCalendarService) CreateEvent(calendarID string, input gcal.EventInput) (*gcal.CreatedEvent, error) {
	args := m.Called(calendarID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gcal.CreatedEvent), args.Error(1)
}

func (m *MockCalendarService) DeleteEvent(calendarID, eventID string) error {
	args := m.Called(calendarID, eventID)
	return args.Error(0)
}
