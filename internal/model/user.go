package model

import "time"

// User is a chat member tracked by the gate. TelegramID is the stable
// transport identity; ID is the local row key everything else references.
type User struct {
	ID                 int64      `json:"id"`
	TelegramID         int64      `json:"telegram_id"`
	DisplayName        string     `json:"display_name"`
	VerificationPassed bool       `json:"verification_passed"`
	ChallengeCount     int        `json:"challenge_count"`
	LastChallengeAt    *time.Time `json:"last_challenge_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	SoftDeleted        bool       `json:"soft_deleted"`
}

// Stats aggregates the user table for the /stats command.
type Stats struct {
	TotalUsers      int64 `json:"total_users"`
	VerifiedUsers   int64 `json:"verified_users"`
	TotalChallenges int64 `json:"total_challenges"`
}
