package captcha

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dvogel/gatewarden/internal/store"
)

// SessionTTL is the fixed validity window of an issued challenge.
const SessionTTL = 5 * time.Minute

// VerifyReason explains a failed verification. User input failures are
// values, never errors.
type VerifyReason string

const (
	ReasonExpired     VerifyReason = "invalid or expired"
	ReasonWrongAnswer VerifyReason = "incorrect answer"
)

type VerifyResult struct {
	OK     bool
	Reason VerifyReason
}

// Challenge is the issued triple handed back to the transport layer.
type Challenge struct {
	SessionID string
	Answer    string
	PNG       []byte
}

// Challenger mints and verifies challenge sessions. It is unconditional:
// the issuance cooldown is the caller's policy, not enforced here.
type Challenger struct {
	sessions *store.SessionStore
	renderer *Renderer
	logger   *slog.Logger
}

func NewChallenger(sessions *store.SessionStore, renderer *Renderer, logger *slog.Logger) *Challenger {
	return &Challenger{
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// Issue generates an answer, persists an unverified session with the fixed
// TTL, and renders the answer image. One persisted session row per call.
func (c *Challenger) Issue(userID int64) (*Challenge, error) {
	answer := GenerateText(AnswerLength)

	sess, err := c.sessions.Create(userID, answer, SessionTTL)
	if err != nil {
		return nil, err
	}

	png, err := c.renderer.Render(answer)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("challenge issued", "session_id", sess.ID, "user_id", userID)
	return &Challenge{SessionID: sess.ID, Answer: answer, PNG: png}, nil
}

// Verify checks submitted text against the live session. The lookup filter
// (unverified, unexpired) and the filtered update in MarkVerified together
// guarantee that of two concurrent correct submissions exactly one succeeds;
// the loser is reported as expired, same as a replay.
func (c *Challenger) Verify(sessionID, submitted string) (VerifyResult, error) {
	sess, err := c.sessions.GetActive(sessionID)
	if err != nil {
		return VerifyResult{}, err
	}
	if sess == nil {
		return VerifyResult{Reason: ReasonExpired}, nil
	}

	if !strings.EqualFold(strings.TrimSpace(submitted), sess.Answer) {
		// Session stays usable for another attempt until it expires.
		return VerifyResult{Reason: ReasonWrongAnswer}, nil
	}

	won, err := c.sessions.MarkVerified(sessionID)
	if err != nil {
		return VerifyResult{}, err
	}
	if !won {
		return VerifyResult{Reason: ReasonExpired}, nil
	}

	c.logger.Info("challenge solved", "session_id", sessionID, "user_id", sess.UserID)
	return VerifyResult{OK: true}, nil
}
