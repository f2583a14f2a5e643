package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestAppendAndGetTurns(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.AppendTurn("s1", "hi", "hello"))
	require.NoError(t, db.AppendTurn("s1", "schedule lunch", "✅ Event created successfully!"))
	require.NoError(t, db.AppendTurn("s2", "other session", "ok"))

	turns, err := db.GetTurns("s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)

	assert.Equal(t, "hi", turns[0].UserText)
	assert.Equal(t, "hello", turns[0].AssistantText)
	assert.Equal(t, "s1", turns[0].SessionID)
	assert.Equal(t, "schedule lunch", turns[1].UserText)
	assert.Less(t, turns[0].ID, turns[1].ID)
	assert.False(t, turns[0].CreatedAt.IsZero())
}

func TestGetTurnsEmptySession(t *testing.T) {
	db := newTestDB(t)

	turns, err := db.GetTurns("missing")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestGetTurnsManySessions(t *testing.T) {
	db := newTestDB(t)

	for _, msg := range []string{"one", "two", "three", "four"} {
		require.NoError(t, db.AppendTurn("s1", msg, "reply to "+msg))
	}
	require.NoError(t, db.AppendTurn("s2", "elsewhere", "ok"))

	turns, err := db.GetTurns("s1")
	require.NoError(t, err)
	require.Len(t, turns, 4)
	assert.Equal(t, "one", turns[0].UserText)
	assert.Equal(t, "four", turns[3].UserText)
}
