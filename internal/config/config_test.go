package config

import (
	"testing"
)

func TestLoadRequiresBotToken(t *testing.T) {
	t.Setenv("GATEWARDEN_BOT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without bot token")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GATEWARDEN_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreURL != "gatewarden.db" {
		t.Errorf("store url = %q, want default", cfg.StoreURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
	if cfg.UpdateTimeout != 30 {
		t.Errorf("update timeout = %d, want 30", cfg.UpdateTimeout)
	}
}

func TestAdminIDsParsing(t *testing.T) {
	t.Setenv("GATEWARDEN_ADMIN_IDS", "1, 42,junk, 99")

	got := getEnvInt64Slice("GATEWARDEN_ADMIN_IDS", nil)
	want := []int64{1, 42, 99}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
