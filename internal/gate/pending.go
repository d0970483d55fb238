package gate

import (
	"sync"
	"time"
)

type pendingEntry struct {
	sessionID string
	expiresAt time.Time
}

// PendingSessions maps a Telegram user id to its outstanding challenge
// session. It is advisory and process-local: lost on restart, and always
// re-validated against the store by the verifier. Entries carry the session
// TTL so abandoned challenges age out instead of leaking.
type PendingSessions struct {
	mu      sync.Mutex
	entries map[int64]pendingEntry
}

func NewPendingSessions() *PendingSessions {
	return &PendingSessions{
		entries: make(map[int64]pendingEntry),
	}
}

// Put records the outstanding session for a user, replacing any previous one.
func (p *PendingSessions) Put(telegramID int64, sessionID string, ttl time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[telegramID] = pendingEntry{
		sessionID: sessionID,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get returns the pending session id for a user. An aged-out entry is
// dropped and reported as a miss.
func (p *PendingSessions) Get(telegramID int64) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[telegramID]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(p.entries, telegramID)
		return "", false
	}
	return e.sessionID, true
}

func (p *PendingSessions) Delete(telegramID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, telegramID)
}

// Sweep removes aged-out entries.
func (p *PendingSessions) Sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	for id, e := range p.entries {
		if now.After(e.expiresAt) {
			delete(p.entries, id)
		}
	}
}

func (p *PendingSessions) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
