package agent

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayWindow(t *testing.T) {
	// Monday, June 3, 2024
	now := time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)
	window := WeekdayWindow(now)
	lines := strings.Split(window, "\n")

	// 7 weekdays x 3 week offsets
	require.Len(t, lines, 21)

	t.Run("today takes the this slot", func(t *testing.T) {
		assert.Equal(t, "this Monday: 2024-06-03", lines[0])
	})

	t.Run("week offsets are labeled in order", func(t *testing.T) {
		assert.Contains(t, lines, "next Monday: 2024-06-10")
		assert.Contains(t, lines, "next next Monday: 2024-06-17")
		assert.Contains(t, lines, "this Sunday: 2024-06-09")
		assert.Contains(t, lines, "next next Sunday: 2024-06-23")
	})

	t.Run("exactly one date per weekday and offset", func(t *testing.T) {
		seen := make(map[string]int)
		for _, line := range lines {
			label, _, ok := strings.Cut(line, ":")
			require.True(t, ok, "line %q has no colon", line)
			seen[label]++
		}
		require.Len(t, seen, 21)
		for label, count := range seen {
			assert.Equal(t, 1, count, "duplicate entry for %s", label)
		}
	})

	t.Run("dates are chronological", func(t *testing.T) {
		var prev time.Time
		for _, line := range lines {
			_, dateStr, _ := strings.Cut(line, ": ")
			date, err := time.Parse("2006-01-02", dateStr)
			require.NoError(t, err)
			assert.True(t, date.After(prev), "dates out of order at %q", line)
			prev = date
		}
	})
}

func TestWeekdayWindowStartsOnAnyWeekday(t *testing.T) {
	// The first line is always "this <today's weekday>: <today>".
	for offset := 0; offset < 7; offset++ {
		day := time.Date(2024, 6, 3+offset, 9, 0, 0, 0, time.UTC)
		window := WeekdayWindow(day)
		first := strings.Split(window, "\n")[0]
		want := fmt.Sprintf("this %s: %s", day.Weekday(), day.Format("2006-01-02"))
		assert.Equal(t, want, first)
	}
}
