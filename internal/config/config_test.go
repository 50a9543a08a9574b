package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KIROSH_DATA_DIR", dir)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.GhostMinInterval != 60*time.Second || cfg.GhostMaxInterval != 180*time.Second {
		t.Errorf("unexpected ghost interval %s..%s", cfg.GhostMinInterval, cfg.GhostMaxInterval)
	}
	if cfg.GhostWarning != 3*time.Second || cfg.GhostTimeLimit != 10*time.Second || cfg.GhostTypoGrace != 2*time.Second {
		t.Errorf("unexpected ghost timings %+v", cfg.Ghost())
	}
	if cfg.HintPoll != 5*time.Second || cfg.MorseAutoComplete != time.Second {
		t.Errorf("unexpected poll timings %s %s", cfg.HintPoll, cfg.MorseAutoComplete)
	}
	if cfg.LeaderboardDB != filepath.Join(dir, "leaderboard.db") {
		t.Errorf("unexpected leaderboard db %q", cfg.LeaderboardDB)
	}
	if cfg.LeaderboardAddr != ":8080" || cfg.LogLevel != "info" || cfg.LeaderboardURL != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("KIROSH_DATA_DIR", t.TempDir())
	t.Setenv("KIROSH_GHOST_MIN_INTERVAL", "5s")
	t.Setenv("KIROSH_GHOST_MAX_INTERVAL", "10s")
	t.Setenv("KIROSH_LEADERBOARD_URL", "http://localhost:8080")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.GhostMinInterval != 5*time.Second || cfg.GhostMaxInterval != 10*time.Second {
		t.Errorf("overrides not applied: %+v", cfg.Ghost())
	}
	if cfg.LeaderboardURL != "http://localhost:8080" {
		t.Errorf("unexpected url %q", cfg.LeaderboardURL)
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("KIROSH_DATA_DIR", t.TempDir())
	t.Setenv("KIROSH_GHOST_MIN_INTERVAL", "5m")
	t.Setenv("KIROSH_HINT_POLL", "0s")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "exceeds max interval") || !strings.Contains(err.Error(), "hint poll") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestParse_BadDuration(t *testing.T) {
	t.Setenv("KIROSH_DATA_DIR", t.TempDir())
	t.Setenv("KIROSH_GHOST_WARNING", "soon")

	_, err := Parse()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("expected parse env error, got %v", err)
	}
}
