package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dvogel/gatewarden/internal/model"
)

type MessageLogStore struct {
	db *sql.DB
}

func NewMessageLogStore(db *sql.DB) *MessageLogStore {
	return &MessageLogStore{db: db}
}

func scanMessageLog(scanner rowScanner) (*model.MessageLog, error) {
	var ml model.MessageLog
	var text sql.NullString

	err := scanner.Scan(&ml.ID, &ml.UserID, &text, &ml.Blocked, &ml.CreatedAt, &ml.UpdatedAt)
	if err != nil {
		return nil, err
	}
	ml.MessageText = text.String
	return &ml, nil
}

const messageLogCols = `id, user_id, message_text, blocked, created_at, updated_at`

// Record logs one gated message with its block decision.
func (s *MessageLogStore) Record(userID int64, text string, blocked bool) (*model.MessageLog, error) {
	result, err := s.db.Exec(
		`INSERT INTO message_logs (user_id, message_text, blocked) VALUES (?, ?, ?)`,
		userID, text, blocked,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+messageLogCols+` FROM message_logs WHERE id = ?`, id)
	ml, err := scanMessageLog(row)
	if err != nil {
		return nil, fmt.Errorf("get message log: %w", err)
	}
	return ml, nil
}

// CountBlockedSince counts blocked entries newer than the given age.
func (s *MessageLogStore) CountBlockedSince(age time.Duration) (int64, error) {
	cutoff := formatTime(time.Now().Add(-age))
	var count int64
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM message_logs WHERE blocked = 1 AND created_at > ?`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count blocked messages: %w", err)
	}
	return count, nil
}
