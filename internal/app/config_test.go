package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spiderquest/internal/state"
)

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{DataDir: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Audio != "auto" || cfg.StartMode != string(ModeWebBuilder) {
		t.Fatalf("unexpected defaults: audio=%q mode=%q", cfg.Audio, cfg.StartMode)
	}
	if cfg.UI.StyleVariant != "silk" || cfg.UI.MotionLevel != "full" {
		t.Fatalf("unexpected ui defaults: %+v", cfg.UI)
	}
	if cfg.DownloadDir != filepath.Join(cfg.DataDir, "books") {
		t.Fatalf("download dir = %q", cfg.DownloadDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.Audio = "loud" },
		func(c *Config) { c.StartMode = "chess" },
		func(c *Config) { c.StartMode = "none" },
		func(c *Config) { c.UI.StyleVariant = "neon" },
		func(c *Config) { c.UI.MotionLevel = "wild" },
	} {
		cfg := DefaultConfig()
		cfg.DataDir = t.TempDir()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", cfg)
		}
	}
}

func TestValidateNormalisesModeAliases(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.StartMode = "Backyard"
	cfg.Audio = "0"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.StartMode != string(ModeBugCatcher) || cfg.Audio != "off" {
		t.Fatalf("got mode=%q audio=%q", cfg.StartMode, cfg.Audio)
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPIDERQUEST_DATA_DIR", dir)
	t.Setenv("SPIDERQUEST_AUDIO", "off")
	t.Setenv("SPIDERQUEST_SEED", "42")
	t.Setenv("SPIDERQUEST_STYLE", "retro")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DataDir != dir || cfg.Audio != "off" || cfg.Seed != 42 || cfg.UI.StyleVariant != "retro" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DevHTTP == "" {
		t.Fatalf("defaults should survive env parsing")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"web_builder": ModeWebBuilder,
		"garden":      ModeWebBuilder,
		"bugs":        ModeBugCatcher,
		" QUIZ ":      ModeQuiz,
		"":            ModeNone,
	}
	for raw, want := range cases {
		got, ok := parseMode(raw)
		if !ok || got != want {
			t.Fatalf("parseMode(%q) = %q,%v want %q", raw, got, ok, want)
		}
	}
	if _, ok := parseMode("chess"); ok {
		t.Fatalf("unknown mode should not parse")
	}
}

func TestDashboardText(t *testing.T) {
	d := dashboardFrom(state.ProgressRecord{
		TotalPlaySeconds: 179,
		QuizzesCompleted: 2,
		CorrectAnswers:   5,
		BugCatchScores:   []int{1, 2, 3, 4, 5, 6},
		Badges:           []string{"Web Master"},
	}, true)
	if d.PlayMinutes != 2 || d.ScoresText() != "2, 3, 4, 5, 6" {
		t.Fatalf("unexpected dashboard: %+v %q", d, d.ScoresText())
	}
	if got := (Dashboard{}).ScoresText(); got != "-" {
		t.Fatalf("empty scores = %q", got)
	}
	lines := d.Lines()
	if lines[len(lines)-1] != "Badge: Web Master" {
		t.Fatalf("lines = %v", lines)
	}
	if v := d.viewState(); v.PlayTime != "2m" || v.Completion <= 0.33 || v.Completion >= 0.34 {
		t.Fatalf("view state = %+v", v)
	}
}

func TestReadDashboardAndResetProgress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	ps := state.NewProgressStore(store, nil)
	rec := state.Zero()
	rec.QuizzesCompleted = 4
	rec.Badges = []string{"Bug Buster"}
	if err := ps.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = store.Close()

	d, err := ReadDashboard(ctx, cfg)
	if err != nil || d.Quizzes != 4 || len(d.Badges) != 1 {
		t.Fatalf("ReadDashboard = %+v, %v", d, err)
	}
	if err := ResetProgress(ctx, cfg); err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	d, err = ReadDashboard(ctx, cfg)
	if err != nil || d.Quizzes != 0 || len(d.Badges) != 0 {
		t.Fatalf("after reset = %+v, %v", d, err)
	}
}

func TestNewFailsBeforeOpeningLogWhenDataDirIsBlocked(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(blocker, "data")
	cfg.LogPath = filepath.Join(dir, "events.jsonl")

	_, err := New(cfg)
	if err == nil || !strings.Contains(err.Error(), "create data dir") {
		t.Fatalf("expected data dir error, got %v", err)
	}
	if _, statErr := os.Stat(cfg.LogPath); !os.IsNotExist(statErr) {
		t.Fatalf("log file should not be created when the store cannot open")
	}
}
