package model

import "time"

// ChallengeSession is a single issued CAPTCHA challenge. The ID is an
// unguessable random token, not a sequence. A session flips Verified
// false->true exactly once and is never deleted, only soft-marked.
type ChallengeSession struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Answer      string    `json:"answer"`
	ExpiresAt   time.Time `json:"expires_at"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SoftDeleted bool      `json:"soft_deleted"`
}
