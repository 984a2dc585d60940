package devtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Scenario describes a reproducible screen the dev endpoint can jump to.
type Scenario struct {
	Name          string
	Mode          string
	Connections   int
	FastForward   time.Duration
	AnswerCorrect bool
	DashboardOpen bool
	BooksOpen     bool
}

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

// Names lists every scenario Resolve recognises.
func (m *Manager) Names() []string {
	return []string{"web_builder", "web_complete", "bug_catcher", "bug_over", "quiz", "quiz_done", "dashboard", "books"}
}

func (m *Manager) Resolve(name string) Scenario {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "web_builder", "web", "playing":
		return Scenario{Name: "web_builder", Mode: "web_builder"}
	case "web_complete":
		return Scenario{Name: "web_complete", Mode: "web_builder", Connections: 18}
	case "bug_catcher", "bugs":
		return Scenario{Name: "bug_catcher", Mode: "bug_catcher"}
	case "bug_over":
		return Scenario{Name: "bug_over", Mode: "bug_catcher", FastForward: 30 * time.Second}
	case "quiz":
		return Scenario{Name: "quiz", Mode: "quiz"}
	case "quiz_done":
		return Scenario{Name: "quiz_done", Mode: "quiz", AnswerCorrect: true}
	case "dashboard":
		return Scenario{Name: "dashboard", DashboardOpen: true}
	case "books":
		return Scenario{Name: "books", BooksOpen: true}
	default:
		return Scenario{Name: "web_builder", Mode: "web_builder"}
	}
}

// SetState writes dev_state.json so external harnesses can wait for a
// scenario to render.
func (m *Manager) SetState(ctx context.Context, cacheDir string, state string, rendered bool) error {
	_ = ctx
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		cacheDir = filepath.Join(home, ".cache", "spiderquest")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	payload := map[string]any{
		"state":    strings.TrimSpace(state),
		"rendered": rendered,
	}
	b, _ := json.Marshal(payload)
	return os.WriteFile(filepath.Join(cacheDir, "dev_state.json"), b, 0o644)
}
