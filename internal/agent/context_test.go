package agent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationWindowEviction(t *testing.T) {
	conv := NewConversation(7)

	for i := 1; i <= 8; i++ {
		conv.Append(Turn{
			User:      fmt.Sprintf("message %d", i),
			Assistant: fmt.Sprintf("reply %d", i),
		})
	}

	all := conv.All()
	window := conv.Window()

	require.Len(t, all, 8)
	require.Len(t, window, 7)

	// The window is the last 7 appended turns, in order.
	assert.Equal(t, all[1:], window)
	assert.Equal(t, "message 2", window[0].User)
	assert.Equal(t, "message 8", window[6].User)
}

func TestConversationWindowIsSuffix(t *testing.T) {
	conv := NewConversation(3)

	for i := 0; i < 10; i++ {
		conv.Append(Turn{User: fmt.Sprintf("u%d", i), Assistant: fmt.Sprintf("a%d", i)})

		all := conv.All()
		window := conv.Window()
		require.Equal(t, all[len(all)-len(window):], window, "window must be a suffix of the full history")
	}
}

func TestConversationRender(t *testing.T) {
	conv := NewConversation(7)
	assert.Equal(t, "No previous conversation.", conv.Render())

	conv.Append(Turn{User: "hi", Assistant: "hello"})
	conv.Append(Turn{User: "schedule lunch", Assistant: "done"})

	assert.Equal(t, "User: hi\nAssistant: hello\nUser: schedule lunch\nAssistant: done", conv.Render())
}

func TestConversationDefaultWindowSize(t *testing.T) {
	conv := NewConversation(0)
	for i := 0; i < 10; i++ {
		conv.Append(Turn{User: "u", Assistant: "a"})
	}
	assert.Len(t, conv.Window(), defaultWindowSize)
	assert.Len(t, conv.All(), 10)
}
