package webbuilder

import (
	"math"
	"testing"

	"spiderquest/internal/games"
	"spiderquest/internal/games/gamestest"
	"spiderquest/internal/render"
)

func newGame(t *testing.T) (*Game, *gamestest.Recorder) {
	t.Helper()
	rec := &gamestest.Recorder{}
	g := New()
	g.Init(games.Env{Host: rec, Sounds: rec})
	return g, rec
}

func TestInitLaysOutFiveRings(t *testing.T) {
	g, _ := newGame(t)
	anchors := g.Anchors()
	if len(anchors) != Rings*AnchorsPerRing {
		t.Fatalf("expected 60 anchors, got %d", len(anchors))
	}
	first := anchors[0].Pos
	if math.Abs(first.X-540) > 1e-9 || math.Abs(first.Y-300) > 1e-9 {
		t.Fatalf("unexpected first anchor %+v", first)
	}
	last := anchors[len(anchors)-1].Pos
	if d := last.Dist(render.Point{X: 450, Y: 300}); math.Abs(d-290) > 1e-9 {
		t.Fatalf("outer ring radius = %v", d)
	}
}

func TestPointerDownOutsideRadiusDoesNothing(t *testing.T) {
	g, rec := newGame(t)
	g.PointerDown(render.Point{X: 540 + 12, Y: 300})
	if g.Dragging() {
		t.Fatalf("distance 12 must not pick")
	}
	if len(rec.Tones) != 0 {
		t.Fatalf("expected no tone, got %v", rec.Tones)
	}
}

func TestDragCommitsConnection(t *testing.T) {
	g, rec := newGame(t)
	a := g.Anchors()
	g.PointerDown(a[0].Pos)
	if !g.Dragging() || !g.Anchors()[0].Engaged {
		t.Fatalf("expected dragging from anchor 0")
	}
	g.PointerMove(render.Point{X: 500, Y: 320})
	g.PointerUp(a[1].Pos)
	if len(g.Connections()) != 1 {
		t.Fatalf("expected one connection")
	}
	if g.Dragging() || g.Anchors()[0].Engaged {
		t.Fatalf("expected idle with engagement cleared")
	}
	if got := rec.Tones; len(got) != 2 || got[0] != "click" || got[1] != "success" {
		t.Fatalf("unexpected tones %v", got)
	}
}

func TestReleaseOnSameAnchorFails(t *testing.T) {
	g, rec := newGame(t)
	a := g.Anchors()
	g.PointerDown(a[5].Pos)
	g.PointerUp(a[5].Pos)
	if len(g.Connections()) != 0 {
		t.Fatalf("self connection must not commit")
	}
	if rec.LastTone() != "fail" {
		t.Fatalf("expected fail tone, got %q", rec.LastTone())
	}
}

func TestPointerUpWhileIdleIsIgnored(t *testing.T) {
	g, rec := newGame(t)
	g.PointerUp(g.Anchors()[1].Pos)
	if len(rec.Tones) != 0 || len(g.Connections()) != 0 {
		t.Fatalf("idle release must be a no-op")
	}
}

func TestEighteenConnectionsAwardOnce(t *testing.T) {
	g, rec := newGame(t)
	a := g.Anchors()
	for i := 0; i < CompleteAt+2; i++ {
		g.PointerDown(a[i%12].Pos)
		g.PointerUp(a[(i+1)%12].Pos)
		if i == CompleteAt-2 && g.Completed() {
			t.Fatalf("completed early at %d connections", i+1)
		}
	}
	if !g.Completed() {
		t.Fatalf("expected completed")
	}
	if len(rec.Badges) != 1 || rec.Badges[0] != games.BadgeWebMaster {
		t.Fatalf("unexpected badges %v", rec.Badges)
	}
	found := false
	for _, s := range g.Scene().Texts() {
		if s == DoneBanner {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected completion banner")
	}
}

func TestSceneShowsDashedPreviewOnlyWhileDragging(t *testing.T) {
	g, _ := newGame(t)
	g.PointerMove(render.Point{X: 10, Y: 10})
	if countDashed(g.Scene()) != 0 {
		t.Fatalf("no preview expected while idle")
	}
	g.PointerDown(g.Anchors()[0].Pos)
	g.PointerMove(render.Point{X: 10, Y: 10})
	if countDashed(g.Scene()) != 1 {
		t.Fatalf("expected one preview line")
	}
}

func countDashed(s *render.Scene) int {
	n := 0
	for _, sh := range s.Shapes {
		if sh.Kind == render.ShapeLine && sh.Dashed {
			n++
		}
	}
	return n
}

func TestSecondPointerDownReleasesFirstAnchor(t *testing.T) {
	g, _ := newGame(t)
	a := g.Anchors()
	g.PointerDown(a[0].Pos)
	g.PointerDown(a[5].Pos)
	if g.Anchors()[0].Engaged || !g.Anchors()[5].Engaged {
		t.Fatalf("expected only anchor 5 engaged after second press")
	}
	g.PointerUp(a[6].Pos)
	if g.Dragging() {
		t.Fatalf("expected idle after release")
	}
	for i, an := range g.Anchors() {
		if an.Engaged {
			t.Fatalf("anchor %d still engaged while idle", i)
		}
	}
	if got := g.Connections(); len(got) != 1 || got[0].From != a[5].Pos {
		t.Fatalf("expected one connection from anchor 5, got %+v", got)
	}
}
