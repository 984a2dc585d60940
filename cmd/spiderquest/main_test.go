package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsOnFreshProfile(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "stats", "--data-dir", dir)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Play time:   0m", "Bug scores:  -", "No badges yet."} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, "reset", "--data-dir", dir); err == nil {
		t.Fatalf("expected reset without --yes to fail")
	}
	out, err := runCLI(t, "reset", "--yes", "--data-dir", dir)
	if err != nil || !strings.Contains(out, "Progress reset.") {
		t.Fatalf("reset: %q %v", out, err)
	}
}

func TestBooksListAndExport(t *testing.T) {
	out, err := runCLI(t, "books", "--data-dir", t.TempDir())
	if err != nil {
		t.Fatalf("books: %v", err)
	}
	if !strings.Contains(out, "square") || !strings.Contains(out, "portrait") {
		t.Fatalf("books output:\n%s", out)
	}

	bundle := t.TempDir()
	if err := os.MkdirAll(filepath.Join(bundle, "books"), 0o755); err != nil {
		t.Fatal(err)
	}
	pdf := filepath.Join(bundle, "books", "Spiders_Eight_Legs_of_Awesome_8x10.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	dest := t.TempDir()
	out, err = runCLI(t, "books", "export", "portrait", dest, "--bundle", bundle, "--data-dir", t.TempDir())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := os.ReadFile(strings.TrimSpace(out))
	if err != nil || string(got) != "%PDF-1.4" {
		t.Fatalf("exported file: %q %v", got, err)
	}
}

func TestInvalidStyleIsRejected(t *testing.T) {
	t.Setenv("SPIDERQUEST_STYLE", "neon")
	if _, err := runCLI(t, "stats", "--data-dir", t.TempDir()); err == nil {
		t.Fatalf("expected invalid style to fail")
	}
}
