package store

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dvogel/gatewarden/internal/database"
)

func setupSessionTestDB(t *testing.T) (*SessionStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:", "")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	u, err := NewUserStore(db).Upsert(12345, "alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewSessionStore(db), u.ID
}

func TestSessionCreate(t *testing.T) {
	ss, userID := setupSessionTestDB(t)

	cs, err := ss.Create(userID, "K3XQ9P", 5*time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(cs.ID) != 32 {
		t.Errorf("session id length = %d, want 32 hex chars", len(cs.ID))
	}
	if cs.Answer != "K3XQ9P" {
		t.Errorf("answer = %q, want %q", cs.Answer, "K3XQ9P")
	}
	if cs.Verified {
		t.Error("new session should be unverified")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	ss, userID := setupSessionTestDB(t)

	a, _ := ss.Create(userID, "AAAAAA", time.Minute)
	b, _ := ss.Create(userID, "BBBBBB", time.Minute)
	if a.ID == b.ID {
		t.Errorf("two sessions share id %q", a.ID)
	}
}

func TestSessionGetActive(t *testing.T) {
	ss, userID := setupSessionTestDB(t)

	created, _ := ss.Create(userID, "K3XQ9P", 5*time.Minute)

	cs, err := ss.GetActive(created.ID)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if cs == nil {
		t.Fatal("expected active session, got nil")
	}
}

func TestSessionGetActiveUnknownID(t *testing.T) {
	ss, _ := setupSessionTestDB(t)

	cs, err := ss.GetActive("deadbeefdeadbeefdeadbeefdeadbeef")
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if cs != nil {
		t.Error("expected nil for unknown session id")
	}
}

func TestSessionGetActiveExpired(t *testing.T) {
	ss, userID := setupSessionTestDB(t)

	created, _ := ss.Create(userID, "K3XQ9P", -time.Minute)

	cs, err := ss.GetActive(created.ID)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if cs != nil {
		t.Error("expected nil for expired session")
	}
}

func TestSessionMarkVerifiedOnce(t *testing.T) {
	ss, userID := setupSessionTestDB(t)

	created, _ := ss.Create(userID, "K3XQ9P", 5*time.Minute)

	won, err := ss.MarkVerified(created.ID)
	if err != nil {
		t.Fatalf("mark verified: %v", err)
	}
	if !won {
		t.Fatal("first mark should win the flip")
	}

	won, err = ss.MarkVerified(created.ID)
	if err != nil {
		t.Fatalf("second mark verified: %v", err)
	}
	if won {
		t.Error("second mark should not report a row change")
	}

	// A verified session is no longer active.
	cs, _ := ss.GetActive(created.ID)
	if cs != nil {
		t.Error("verified session should not be returned as active")
	}
}

func TestSessionMarkVerifiedExpired(t *testing.T) {
	ss, userID := setupSessionTestDB(t)

	created, _ := ss.Create(userID, "K3XQ9P", -time.Minute)

	won, err := ss.MarkVerified(created.ID)
	if err != nil {
		t.Fatalf("mark verified: %v", err)
	}
	if won {
		t.Error("expired session must not be markable")
	}
}

func TestSessionConcurrentVerify(t *testing.T) {
	ss, userID := setupSessionTestDB(t)

	created, _ := ss.Create(userID, "K3XQ9P", 5*time.Minute)

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := ss.MarkVerified(created.ID)
			if err != nil {
				t.Errorf("mark verified: %v", err)
				return
			}
			if won {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
}
