package agent

import (
	"fmt"
	"strings"
)

const defaultWindowSize = 7

// Turn is one completed user/assistant exchange. Immutable once appended.
type Turn struct {
	User      string
	Assistant string
}

// Conversation holds the bounded recent-turn window used for prompt
// grounding plus the unbounded full history kept for display. The window is
// always a suffix of the full history. A Conversation is owned by a single
// session and must not be mutated concurrently; callers serialize access.
type Conversation struct {
	windowSize int
	window     []Turn
	all        []Turn
}

// NewConversation creates an empty conversation with the given window bound.
func NewConversation(windowSize int) *Conversation {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &Conversation{windowSize: windowSize}
}

// Append records one completed exchange in both the window and the full
// history, evicting the oldest window entry when the window is full.
func (c *Conversation) Append(turn Turn) {
	c.all = append(c.all, turn)
	c.window = append(c.window, turn)
	if len(c.window) > c.windowSize {
		c.window = c.window[len(c.window)-c.windowSize:]
	}
}

// Window returns a copy of the bounded recent-turn window, oldest first.
func (c *Conversation) Window() []Turn {
	out := make([]Turn, len(c.window))
	copy(out, c.window)
	return out
}

// All returns a copy of the full history, oldest first.
func (c *Conversation) All() []Turn {
	out := make([]Turn, len(c.all))
	copy(out, c.all)
	return out
}

// Render formats the bounded window for the system prompt.
func (c *Conversation) Render() string {
	if len(c.window) == 0 {
		return "No previous conversation."
	}

	var b strings.Builder
	for _, turn := range c.window {
		fmt.Fprintf(&b, "User: %s\n", turn.User)
		fmt.Fprintf(&b, "Assistant: %s\n", turn.Assistant)
	}
	return strings.TrimRight(b.String(), "\n")
}
