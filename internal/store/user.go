package store

import (
	"database/sql"
	"fmt"

	"github.com/dvogel/gatewarden/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner rowScanner) (*model.User, error) {
	var u model.User
	var lastChallengeAt sql.NullTime

	err := scanner.Scan(
		&u.ID, &u.TelegramID, &u.DisplayName, &u.VerificationPassed,
		&u.ChallengeCount, &lastChallengeAt, &u.CreatedAt, &u.UpdatedAt,
		&u.SoftDeleted,
	)
	if err != nil {
		return nil, err
	}

	if lastChallengeAt.Valid {
		u.LastChallengeAt = &lastChallengeAt.Time
	}
	return &u, nil
}

const userCols = `id, telegram_id, display_name, verification_passed, challenge_count, last_challenge_at, created_at, updated_at, soft_deleted`

// Upsert creates the user row for a Telegram identity on first contact, or
// refreshes the display name on subsequent ones.
func (s *UserStore) Upsert(telegramID int64, displayName string) (*model.User, error) {
	_, err := s.db.Exec(
		`INSERT INTO users (telegram_id, display_name) VALUES (?, ?)
		 ON CONFLICT(telegram_id) DO UPDATE SET display_name = excluded.display_name, updated_at = datetime('now')`,
		telegramID, displayName,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return s.GetByTelegramID(telegramID)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByTelegramID(telegramID int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE telegram_id = ?`, telegramID)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return u, nil
}

// SetVerified flips the subject's verification state. The transition to true
// happens on a successful challenge answer; back to false only via an
// administrative reset.
func (s *UserStore) SetVerified(id int64, passed bool) error {
	_, err := s.db.Exec(
		`UPDATE users SET verification_passed = ?, updated_at = datetime('now') WHERE id = ?`,
		passed, id,
	)
	if err != nil {
		return fmt.Errorf("set verified: %w", err)
	}
	return nil
}

// RecordChallenge bumps the challenge counter and stamps last_challenge_at.
// Called once per issuance; the cooldown check reads the stamp back.
func (s *UserStore) RecordChallenge(id int64) error {
	_, err := s.db.Exec(
		`UPDATE users SET challenge_count = challenge_count + 1, last_challenge_at = datetime('now'), updated_at = datetime('now') WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("record challenge: %w", err)
	}
	return nil
}

// ResetVerification returns the subject to the unverified state and clears
// the rate-limit bookkeeping.
func (s *UserStore) ResetVerification(id int64) error {
	_, err := s.db.Exec(
		`UPDATE users SET verification_passed = 0, challenge_count = 0, last_challenge_at = NULL, updated_at = datetime('now') WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("reset verification: %w", err)
	}
	return nil
}

func (s *UserStore) Stats() (*model.Stats, error) {
	var st model.Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(verification_passed), 0),
		        COALESCE(SUM(challenge_count), 0)
		 FROM users WHERE soft_deleted = 0`,
	).Scan(&st.TotalUsers, &st.VerifiedUsers, &st.TotalChallenges)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return &st, nil
}
