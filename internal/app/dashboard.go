package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"spiderquest/internal/state"
	"spiderquest/internal/ui"
)

// badgeCount is the number of badges the modes can award.
const badgeCount = 3

func dashboardFrom(rec state.ProgressRecord, audioOn bool) Dashboard {
	return Dashboard{
		PlayMinutes: rec.TotalPlaySeconds / 60,
		Quizzes:     rec.QuizzesCompleted,
		Correct:     rec.CorrectAnswers,
		LastScores:  rec.LastScores(5),
		Badges:      append([]string{}, rec.Badges...),
		AudioOn:     audioOn,
	}
}

// ScoresText joins the recent bug scores, or "-" when there are none.
func (d Dashboard) ScoresText() string {
	if len(d.LastScores) == 0 {
		return "-"
	}
	parts := make([]string, len(d.LastScores))
	for i, s := range d.LastScores {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

func (d Dashboard) Completion() float64 {
	return min(1, float64(len(d.Badges))/badgeCount)
}

// Lines renders the dashboard as plain text.
func (d Dashboard) Lines() []string {
	lines := []string{
		fmt.Sprintf("Play time:   %dm", d.PlayMinutes),
		fmt.Sprintf("Quizzes:     %d", d.Quizzes),
		fmt.Sprintf("Correct:     %d", d.Correct),
		fmt.Sprintf("Bug scores:  %s", d.ScoresText()),
	}
	if len(d.Badges) == 0 {
		return append(lines, "No badges yet.")
	}
	for _, b := range d.Badges {
		lines = append(lines, "Badge: "+b)
	}
	return lines
}

func (d Dashboard) viewState() ui.DashboardState {
	return ui.DashboardState{
		PlayTime:   fmt.Sprintf("%dm", d.PlayMinutes),
		Quizzes:    d.Quizzes,
		Correct:    d.Correct,
		BugScores:  d.ScoresText(),
		Badges:     append([]string{}, d.Badges...),
		Completion: d.Completion(),
	}
}

func openStore(ctx context.Context, cfg Config) (*state.SQLiteStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "spiderquest.db"))
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// ReadDashboard loads the stored progress without starting the game.
func ReadDashboard(ctx context.Context, cfg Config) (Dashboard, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return Dashboard{}, err
	}
	defer store.Close()
	rec := state.NewProgressStore(store, nil).Load(ctx)
	audioOn := cfg.Audio != "off"
	if settings, err := store.LoadSettings(ctx); err == nil && settings[settingAudio] == "off" {
		audioOn = false
	}
	return dashboardFrom(rec, audioOn), nil
}

// ResetProgress performs a full reset of the stored profile.
func ResetProgress(ctx context.Context, cfg Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if _, err := state.NewProgressStore(store, nil).Reset(ctx); err != nil {
		return err
	}
	return nil
}
