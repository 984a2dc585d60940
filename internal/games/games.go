// Package games defines the contract between the mode controller and the
// mini-game modes.
package games

import (
	"spiderquest/internal/clock"
	"spiderquest/internal/render"
)

// Badge names awarded by the modes.
const (
	BadgeWebMaster  = "Web Master"
	BadgeBugBuster  = "Bug Buster"
	BadgeSilkGenius = "Silk Genius"
)

// Host is the controller surface a mode may call back into.
type Host interface {
	AwardBadge(name string) bool
	RecordBugScore(score int)
	RecordQuiz(correct int)
}

// Sounds plays feedback tones. Implementations must not block.
type Sounds interface {
	Success()
	Fail()
	Click()
}

// Rand is the random source modes draw from. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Env carries everything a mode needs for one run. Timers is owned by the
// controller and cancelled when the mode is switched away from.
type Env struct {
	Host   Host
	Sounds Sounds
	Rand   Rand
	Timers *clock.Scope
}

// Game is one mini-game mode. Every input slot is always called; modes that
// ignore an event embed NoInput.
type Game interface {
	Name() string
	Init(env Env)
	PointerDown(p render.Point)
	PointerMove(p render.Point)
	PointerUp(p render.Point)
	Click(p render.Point)
	Scene() *render.Scene
}

// NoInput provides no-op input handlers.
type NoInput struct{}

func (NoInput) PointerDown(render.Point) {}
func (NoInput) PointerMove(render.Point) {}
func (NoInput) PointerUp(render.Point)   {}
func (NoInput) Click(render.Point)       {}

// Common palette shared by the mode scenes.
const (
	ColorInk    = "#222222"
	ColorBanner = "#2d3436"
)
