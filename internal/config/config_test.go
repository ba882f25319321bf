package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/CCMS-2025/center-service/internal/repositories"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Errorf("data dir = %q, want data", cfg.DataDir)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("poll interval = %s, want 5s", cfg.PollInterval)
	}
	policy, err := cfg.Cascade()
	if err != nil || policy != repositories.CascadeKeep {
		t.Errorf("cascade = (%v, %v), want keep", policy, err)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CENTER_DATA_DIR", "/tmp/center")
	t.Setenv("CENTER_CASCADE_POLICY", "block")
	t.Setenv("CENTER_POLL_INTERVAL", "30s")
	t.Setenv("CENTER_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DataDir != "/tmp/center" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	policy, _ := cfg.Cascade()
	if policy != repositories.CascadeBlock {
		t.Errorf("cascade = %v, want block", policy)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("poll interval = %s", cfg.PollInterval)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.Level())
	}
}

func TestLoadConfigRejectsUnknownCascadePolicy(t *testing.T) {
	t.Setenv("CENTER_CASCADE_POLICY", "explode")
	if _, err := LoadConfig(); err == nil {
		t.Error("unknown cascade policy accepted")
	}
}
