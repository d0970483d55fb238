// Package gate holds the per-message verification policy: the allow/block
// decision, the issuance cooldown, and the advisory mapping from transport
// identity to the pending challenge session. The store stays the source of
// truth for verification; everything here is policy over it.
package gate

import (
	"time"

	"github.com/dvogel/gatewarden/internal/model"
)

// ChallengeCooldown is the minimum wait between two challenge issuances for
// the same subject.
const ChallengeCooldown = 30 * time.Second

type Decision int

const (
	Allowed Decision = iota
	Blocked
)

// Resolve maps the subject's persisted verification state to a per-message
// decision. An unknown subject is treated as unverified.
func Resolve(u *model.User) Decision {
	if u != nil && u.VerificationPassed {
		return Allowed
	}
	return Blocked
}

// CooldownRemaining reports whether the subject is still inside the issuance
// cooldown, and if so how many whole seconds remain (rounded up).
func CooldownRemaining(u *model.User, now time.Time) (int, bool) {
	if u == nil || u.LastChallengeAt == nil {
		return 0, false
	}
	elapsed := now.Sub(*u.LastChallengeAt)
	if elapsed >= ChallengeCooldown {
		return 0, false
	}
	remaining := ChallengeCooldown - elapsed
	secs := int((remaining + time.Second - 1) / time.Second)
	return secs, true
}
