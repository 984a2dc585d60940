package devtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveKnownScenarios(t *testing.T) {
	m := NewManager()
	for _, name := range m.Names() {
		if got := m.Resolve(name).Name; got != name {
			t.Fatalf("Resolve(%q).Name = %q", name, got)
		}
	}
	if sc := m.Resolve("bug_over"); sc.Mode != "bug_catcher" || sc.FastForward != 30*time.Second {
		t.Fatalf("unexpected bug_over scenario: %+v", sc)
	}
	if sc := m.Resolve("web_complete"); sc.Connections != 18 {
		t.Fatalf("web_complete should build a full web: %+v", sc)
	}
}

func TestResolveUnknownFallsBackToWebBuilder(t *testing.T) {
	sc := NewManager().Resolve("nope")
	if sc.Name != "web_builder" || sc.Mode != "web_builder" {
		t.Fatalf("unexpected fallback: %+v", sc)
	}
}

func TestSetStateWritesFile(t *testing.T) {
	dir := t.TempDir()
	if err := NewManager().SetState(context.Background(), dir, " quiz_done ", true); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "dev_state.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got struct {
		State    string `json:"state"`
		Rendered bool   `json:"rendered"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.State != "quiz_done" || !got.Rendered {
		t.Fatalf("unexpected state: %+v", got)
	}
}
