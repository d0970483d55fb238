package model

import "time"

// MessageLog records one gated message and whether it was blocked.
type MessageLog struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	MessageText string    `json:"message_text"`
	Blocked     bool      `json:"blocked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
