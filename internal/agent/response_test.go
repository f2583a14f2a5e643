package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullCreateReply = `Sure, I'll set that up.
CALENDAR-----
title: Team Sync
date: 2024-06-03
time: 14:00
duration_minutes: 30
notification_minutes: 5
calendar_id: work
description: Weekly status
location: Room 4
attendees: a@x.com, b@y.com
`

func TestExtractCreate(t *testing.T) {
	resp, err := Extract(fullCreateReply)
	require.NoError(t, err)
	assert.Equal(t, KindCreate, resp.Kind)

	assert.Equal(t, "Team Sync", resp.Fields["title"])
	assert.Equal(t, "2024-06-03", resp.Fields["date"])
	assert.Equal(t, "14:00", resp.Fields["time"])
	assert.Equal(t, "30", resp.Fields["duration_minutes"])
	assert.Equal(t, "5", resp.Fields["notification_minutes"])
	assert.Equal(t, "work", resp.Fields["calendar_id"])
	assert.Equal(t, "Weekly status", resp.Fields["description"])
	assert.Equal(t, "Room 4", resp.Fields["location"])
	assert.Equal(t, "a@x.com, b@y.com", resp.Fields["attendees"])
}

func TestExtractDelete(t *testing.T) {
	resp, err := Extract("DELETE\ndate: 2024-06-03\ntime:\ntitle: team meeting\n")
	require.NoError(t, err)
	assert.Equal(t, KindDelete, resp.Kind)
	assert.Equal(t, "2024-06-03", resp.Fields["date"])
	assert.Equal(t, "team meeting", resp.Fields["title"])

	// Blank values contribute no field
	_, ok := resp.Fields["time"]
	assert.False(t, ok)
}

func TestExtractNaturalReply(t *testing.T) {
	resp, err := Extract("  The weather looks great today!  ")
	require.NoError(t, err)
	assert.Equal(t, KindReply, resp.Kind)
	assert.Equal(t, "The weather looks great today!", resp.Text)
	assert.Empty(t, resp.Fields)
}

func TestExtractMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantMissing []string
	}{
		{
			name:        "missing date",
			raw:         "CALENDAR-----\ntitle: Lunch\ntime: 12:00\n",
			wantMissing: []string{"date"},
		},
		{
			name:        "missing time and date",
			raw:         "CALENDAR-----\ntitle: Lunch\n",
			wantMissing: []string{"date", "time"},
		},
		{
			name:        "blank title counts as missing",
			raw:         "CALENDAR-----\ntitle:\ndate: 2024-06-03\ntime: 12:00\n",
			wantMissing: []string{"title"},
		},
		{
			name:        "none title counts as missing",
			raw:         "CALENDAR-----\ntitle: none\ndate: 2024-06-03\ntime: 12:00\n",
			wantMissing: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.raw)
			var missing *MissingFieldsError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantMissing, missing.Fields)
		})
	}
}

func TestExtractFieldParsing(t *testing.T) {
	t.Run("value keeps colons after the first", func(t *testing.T) {
		resp, err := Extract("CALENDAR-----\ntitle: Standup\ndate: 2024-06-03\ntime: 09:30\n")
		require.NoError(t, err)
		assert.Equal(t, "09:30", resp.Fields["time"])
	})

	t.Run("keys are lower-cased and trimmed", func(t *testing.T) {
		resp, err := Extract("CALENDAR-----\n  Title : Standup\nDATE: 2024-06-03\ntime: 09:30\n")
		require.NoError(t, err)
		assert.Equal(t, "Standup", resp.Fields["title"])
		assert.Equal(t, "2024-06-03", resp.Fields["date"])
	})

	t.Run("unknown keys are preserved", func(t *testing.T) {
		resp, err := Extract("CALENDAR-----\ntitle: Standup\ndate: 2024-06-03\ntime: 09:30\ncolor: red\n")
		require.NoError(t, err)
		assert.Equal(t, "red", resp.Fields["color"])
	})

	t.Run("lines without colons are skipped", func(t *testing.T) {
		resp, err := Extract("CALENDAR-----\ngibberish line\ntitle: Standup\ndate: 2024-06-03\ntime: 09:30\n")
		require.NoError(t, err)
		assert.Equal(t, KindCreate, resp.Kind)
		assert.Len(t, resp.Fields, 3)
	})
}

func TestExtractDeleteMustBePrefix(t *testing.T) {
	// DELETE in the middle of a sentence is just conversation.
	resp, err := Extract("You can DELETE events by asking me.")
	require.NoError(t, err)
	assert.Equal(t, KindReply, resp.Kind)
}
