package app

import (
	"strings"

	"spiderquest/internal/ui"
)

// Mode is the active mini-game.
type Mode string

const (
	ModeNone       Mode = ""
	ModeWebBuilder Mode = ui.ModeWebBuilder
	ModeBugCatcher Mode = ui.ModeBugCatcher
	ModeQuiz       Mode = ui.ModeQuiz
)

// parseMode accepts the mode keys plus the names the scenes go by on screen.
func parseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return ModeNone, true
	case string(ModeWebBuilder), "web", "garden", "webbuilder":
		return ModeWebBuilder, true
	case string(ModeBugCatcher), "bugs", "backyard", "bugcatcher":
		return ModeBugCatcher, true
	case string(ModeQuiz), "fact_frenzy":
		return ModeQuiz, true
	default:
		return ModeNone, false
	}
}

func (m Mode) Label() string {
	switch m {
	case ModeWebBuilder:
		return "Web Builder"
	case ModeBugCatcher:
		return "Bug Catcher"
	case ModeQuiz:
		return "Quiz"
	default:
		return "None"
	}
}
