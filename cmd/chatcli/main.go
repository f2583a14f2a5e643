// Package main provides a terminal chat client for exercising the agent
// without Google Calendar credentials. It runs with in-memory SQLite and a
// real generation backend; the calendar is an in-memory fake, so created
// and deleted events only exist for the lifetime of the process.
//
// Usage:
//
//	CHATCAL_MODEL=mistral go run cmd/chatcli/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chatcal/chatcal/internal/agent"
	"github.com/chatcal/chatcal/internal/config"
	"github.com/chatcal/chatcal/internal/database"
	"github.com/chatcal/chatcal/internal/gcal"
	"github.com/chatcal/chatcal/internal/llm"
	"github.com/chatcal/chatcal/internal/timeutil"
)

func main() {
	fmt.Println("Calendar agent terminal client (in-memory calendar, nothing is persisted).")
	fmt.Println("Type a message and press enter; 'quit' to exit.")

	cfg := config.LoadFromEnv()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	db, err := database.New(":memory:")
	if err != nil {
		fmt.Printf("Failed to create database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	completer := llm.NewClient(cfg.OllamaURL, cfg.Model, llm.SamplingConfig{
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.TopK,
		MaxTokens:   cfg.MaxTokens,
	})

	loc := time.Local
	if cfg.Timezone != "" {
		resolved, fallback := timeutil.ResolveLocation(cfg.Timezone)
		if fallback {
			fmt.Printf("Unknown timezone %q, using UTC\n", cfg.Timezone)
		}
		loc = resolved
	}

	analyzer := agent.NewAnalyzer(agent.AnalyzerConfig{
		Completer:     completer,
		Calendar:      newMemoryCalendar(),
		Store:         db,
		SessionID:     uuid.NewString(),
		WindowSize:    cfg.HistoryWindow,
		LookaheadDays: cfg.DeleteLookaheadDays,
		Location:      loc,
		Logger:        log,
	})

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		fmt.Println(analyzer.ProcessMessage(context.Background(), line))
		fmt.Println()
	}
}

// memoryCalendar is an in-memory stand-in for the Google Calendar backend.
type memoryCalendar struct {
	mu     sync.Mutex
	nextID int
	events map[string]gcal.Event
}

func newMemoryCalendar() *memoryCalendar {
	return &memoryCalendar{events: make(map[string]gcal.Event)}
}

func (c *memoryCalendar) ListCalendars() ([]gcal.CalendarInfo, error) {
	return []gcal.CalendarInfo{
		{ID: "primary", Summary: "My Calendar", Primary: true, Selected: true},
		{ID: "work", Summary: "Work", Selected: true},
	}, nil
}

func (c *memoryCalendar) ListEventsInRange(calendarID string, timeMin, timeMax time.Time) ([]gcal.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var events []gcal.Event
	for _, ev := range c.events {
		if !ev.StartTime.Before(timeMin) && ev.StartTime.Before(timeMax) {
			events = append(events, ev)
		}
	}
	return events, nil
}

func (c *memoryCalendar) CreateEvent(calendarID string, input gcal.EventInput) (*gcal.CreatedEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := fmt.Sprintf("mem-%d", c.nextID)
	c.events[id] = gcal.Event{
		ID:        id,
		Title:     input.Summary,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}

	return &gcal.CreatedEvent{
		ID:          id,
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Attendees:   input.Attendees,
	}, nil
}

func (c *memoryCalendar) DeleteEvent(calendarID, eventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.events[eventID]; !ok {
		return fmt.Errorf("event %s not found", eventID)
	}
	delete(c.events, eventID)
	return nil
}
