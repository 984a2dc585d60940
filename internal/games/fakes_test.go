package games

import (
	"testing"

	"spiderquest/internal/render"
)

type idleGame struct{ NoInput }

func (idleGame) Name() string         { return "idle" }
func (idleGame) Init(Env)             {}
func (idleGame) Scene() *render.Scene { return render.NewScene("#ffffff") }

func TestNoInputSatisfiesAllSlots(t *testing.T) {
	var g Game = idleGame{}
	p := render.Point{X: 1, Y: 2}
	g.PointerDown(p)
	g.PointerMove(p)
	g.PointerUp(p)
	g.Click(p)
	if g.Scene() == nil {
		t.Fatalf("expected scene")
	}
}
