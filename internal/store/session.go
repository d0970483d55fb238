package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dvogel/gatewarden/internal/model"
)

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func scanSession(scanner rowScanner) (*model.ChallengeSession, error) {
	var cs model.ChallengeSession
	err := scanner.Scan(
		&cs.ID, &cs.UserID, &cs.Answer, &cs.ExpiresAt, &cs.Verified,
		&cs.CreatedAt, &cs.UpdatedAt, &cs.SoftDeleted,
	)
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

const sessionCols = `id, user_id, answer, expires_at, verified, created_at, updated_at, soft_deleted`

// newSessionID returns a 128-bit random hex token. Session ids must be
// unguessable, not sequential.
func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Create inserts a new unverified session expiring after ttl.
func (s *SessionStore) Create(userID int64, answer string, ttl time.Duration) (*model.ChallengeSession, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	expiresAt := formatTime(time.Now().Add(ttl))

	_, err = s.db.Exec(
		`INSERT INTO challenge_sessions (id, user_id, answer, expires_at) VALUES (?, ?, ?, ?)`,
		id, userID, answer, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s.GetByID(id)
}

func (s *SessionStore) GetByID(id string) (*model.ChallengeSession, error) {
	row := s.db.QueryRow(`SELECT `+sessionCols+` FROM challenge_sessions WHERE id = ?`, id)
	cs, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return cs, nil
}

// GetActive returns the session only while it is still usable: unverified,
// unexpired, and not soft-deleted.
func (s *SessionStore) GetActive(id string) (*model.ChallengeSession, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionCols+` FROM challenge_sessions
		 WHERE id = ? AND verified = 0 AND soft_deleted = 0 AND expires_at > datetime('now')`,
		id,
	)
	cs, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return cs, nil
}

// MarkVerified flips verified false->true and reports whether this call won
// the flip. The filtered UPDATE is the replay guard: of two concurrent calls
// for the same session, exactly one sees a row change.
func (s *SessionStore) MarkVerified(id string) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE challenge_sessions SET verified = 1, updated_at = datetime('now')
		 WHERE id = ? AND verified = 0 AND expires_at > datetime('now')`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("mark session verified: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}
