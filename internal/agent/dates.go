package agent

import (
	"fmt"
	"strings"
	"time"
)

// weekOffsetLabels name the three weekly instances the prompt can ground
// relative dates against.
var weekOffsetLabels = [3]string{"this", "next", "next next"}

// WeekdayWindow renders a weekday-to-date mapping covering the next three
// weekly instances of every weekday, starting at now. Each line has the form
// "this Monday: 2024-06-03". The first chronological occurrence of a weekday
// takes the "this" slot, the second "next", the third "next next", so every
// (weekday, offset) pair appears exactly once.
func WeekdayWindow(now time.Time) string {
	var b strings.Builder
	seen := make(map[time.Weekday]int, 7)

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for i := 0; i < 21; i++ {
		date := start.AddDate(0, 0, i)
		offset := seen[date.Weekday()]
		if offset >= len(weekOffsetLabels) {
			continue
		}
		seen[date.Weekday()]++

		fmt.Fprintf(&b, "%s %s: %s\n",
			weekOffsetLabels[offset],
			date.Weekday(),
			date.Format("2006-01-02"),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}
