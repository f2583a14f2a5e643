package database

import (
	"fmt"
	"time"
)

// TurnRecord is one persisted conversation exchange.
type TurnRecord struct {
	ID            int64     `json:"id"`
	SessionID     string    `json:"session_id"`
	UserText      string    `json:"user_text"`
	AssistantText string    `json:"assistant_text"`
	CreatedAt     time.Time `json:"created_at"`
}

// AppendTurn stores one completed exchange for a session.
func (d *DB) AppendTurn(sessionID, userText, assistantText string) error {
	_, err := d.Exec(`
		INSERT INTO conversation_turns (session_id, user_text, assistant_text)
		VALUES (?, ?, ?)
	`, sessionID, userText, assistantText)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// GetTurns retrieves the full history for a session in chronological order.
func (d *DB) GetTurns(sessionID string) ([]TurnRecord, error) {
	rows, err := d.Query(`
		SELECT id, session_id, user_text, assistant_text, created_at
		FROM conversation_turns
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		if err := rows.Scan(&t.ID, &t.SessionID, &t.UserText, &t.AssistantText, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating turns: %w", err)
	}

	return turns, nil
}

