package telemetry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type bufCloser struct{ bytes.Buffer }

func (*bufCloser) Close() error { return nil }

func TestEventsAreJSONLines(t *testing.T) {
	buf := &bufCloser{}
	l := newJSONLogger(buf, false).With("session", "abc")
	l.Info("mode.switch", "from", "none", "to", "web_builder")
	l.Debug("frame.tick")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line at info level, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["msg"] != "mode.switch" || entry["to"] != "web_builder" || entry["session"] != "abc" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "events.jsonl")
	for i := 0; i < 2; i++ {
		l, err := NewJSONLogger(path, true)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		l.Error("progress.save_failed", "err", "disk full")
		if err := l.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n := strings.Count(string(b), "progress.save_failed"); n != 2 {
		t.Fatalf("expected 2 events, got %d", n)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *JSONLogger
	l.Info("x")
	l.Error("x")
	if l.With("a", 1) != nil {
		t.Fatalf("expected nil")
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
