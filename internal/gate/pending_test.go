package gate

import (
	"testing"
	"time"
)

func TestPendingPutGet(t *testing.T) {
	p := NewPendingSessions()

	p.Put(1, "session-a", time.Minute)

	got, ok := p.Get(1)
	if !ok {
		t.Fatal("expected pending session")
	}
	if got != "session-a" {
		t.Errorf("session id = %q, want %q", got, "session-a")
	}
}

func TestPendingPutReplaces(t *testing.T) {
	p := NewPendingSessions()

	p.Put(1, "session-a", time.Minute)
	p.Put(1, "session-b", time.Minute)

	got, _ := p.Get(1)
	if got != "session-b" {
		t.Errorf("session id = %q, want %q", got, "session-b")
	}
	if p.Len() != 1 {
		t.Errorf("len = %d, want 1", p.Len())
	}
}

func TestPendingDelete(t *testing.T) {
	p := NewPendingSessions()

	p.Put(1, "session-a", time.Minute)
	p.Delete(1)

	if _, ok := p.Get(1); ok {
		t.Error("expected miss after delete")
	}
}

func TestPendingExpiry(t *testing.T) {
	p := NewPendingSessions()

	p.Put(1, "session-a", -time.Second)

	if _, ok := p.Get(1); ok {
		t.Error("aged-out entry should read as a miss")
	}
	if p.Len() != 0 {
		t.Errorf("len = %d, want 0 after expired read", p.Len())
	}
}

func TestPendingSweep(t *testing.T) {
	p := NewPendingSessions()

	p.Put(1, "stale", -time.Second)
	p.Put(2, "live", time.Minute)

	p.Sweep()

	if p.Len() != 1 {
		t.Errorf("len = %d, want 1 after sweep", p.Len())
	}
	if _, ok := p.Get(2); !ok {
		t.Error("live entry should survive the sweep")
	}
}
