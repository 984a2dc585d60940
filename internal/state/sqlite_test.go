package state

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestKVSetGetOverwriteDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != "two" {
		t.Fatalf("expected last write to win, got %q", got)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected key to be gone after delete")
	}
	if err := store.Set(ctx, "  ", "x"); err == nil {
		t.Fatalf("expected empty key to be rejected")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveSettings(ctx, map[string]string{"audio_enabled": "false", " ": "skip"}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if err := store.SaveSettings(ctx, map[string]string{"audio_enabled": "true"}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	got, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if len(got) != 1 || got["audio_enabled"] != "true" {
		t.Fatalf("unexpected settings: %#v", got)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	ctx := context.Background()

	first, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if err := first.Set(ctx, ProgressKey, `{"time":5}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = first.Close()

	second, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = second.Close() }()
	if err := second.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema after reopen: %v", err)
	}
	got, ok, err := second.Get(ctx, ProgressKey)
	if err != nil || !ok || got != `{"time":5}` {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", got, ok, err)
	}
}
