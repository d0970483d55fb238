package store

import (
	"testing"
	"time"

	"github.com/dvogel/gatewarden/internal/database"
)

func setupMessageLogTestDB(t *testing.T) (*MessageLogStore, int64) {
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
	return NewMessageLogStore(db), u.ID
}

func TestMessageLogRecord(t *testing.T) {
	ms, userID := setupMessageLogTestDB(t)

	ml, err := ms.Record(userID, "hello", true)
	if err != nil {
		t.Fatalf("record message: %v", err)
	}
	if ml.MessageText != "hello" {
		t.Errorf("message_text = %q, want %q", ml.MessageText, "hello")
	}
	if !ml.Blocked {
		t.Error("expected blocked entry")
	}
}

func TestMessageLogCountBlockedSince(t *testing.T) {
	ms, userID := setupMessageLogTestDB(t)

	ms.Record(userID, "spam one", true)
	ms.Record(userID, "spam two", true)
	ms.Record(userID, "fine", false)

	count, err := ms.CountBlockedSince(24 * time.Hour)
	if err != nil {
		t.Fatalf("count blocked: %v", err)
	}
	if count != 2 {
		t.Errorf("blocked count = %d, want 2", count)
	}

	// A zero-width window sees nothing.
	count, err = ms.CountBlockedSince(-time.Hour)
	if err != nil {
		t.Fatalf("count blocked: %v", err)
	}
	if count != 0 {
		t.Errorf("blocked count = %d, want 0 for future cutoff", count)
	}
}
