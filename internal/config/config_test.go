package config

import (
	"os"
	"testing"
	"time"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MARKET_API_URL", "http://example.test/api/")
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://example.test/api" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.SessionStore != SessionStoreFile {
		t.Errorf("SessionStore = %q, want %q", cfg.SessionStore, SessionStoreFile)
	}
}

func TestLoadRejectsUnknownSessionStore(t *testing.T) {
	t.Setenv("MARKET_SESSION_STORE", "sqlite")
	chdir(t, t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown session store")
	}
}

func TestValidateRejectsNegativeRateLimit(t *testing.T) {
	cfg := Config{APIURL: "http://x", SessionStore: SessionStoreMemory, RateLimit: -1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative rate limit")
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn"} {
		logger, err := NewLogger(level)
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", level, err)
		}
		_ = logger.Sync()
	}
	if _, err := NewLogger("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
