// Package webbuilder implements the drag-to-connect web mode.
package webbuilder

import (
	"math"

	"spiderquest/internal/games"
	"spiderquest/internal/render"
)

const (
	Rings          = 5
	AnchorsPerRing = 12
	PickRadius     = 12.0
	TargetRings    = 3
	// CompleteAt is the connection count that completes the web.
	CompleteAt = TargetRings * 6

	Title      = "Web Builder: Drag to connect dots into rings!"
	DoneBanner = "Great web! Badge earned: Web Master"
)

const (
	colorBackground = "#e6fffa"
	colorAnchor     = "#0984e3"
	colorEngaged    = "#00b894"
	colorSilk       = "#6c5ce7"
	colorPreview    = "#636e72"
)

type Anchor struct {
	Pos     render.Point
	Engaged bool
}

type Connection struct {
	From render.Point
	To   render.Point
}

type Game struct {
	anchors     []Anchor
	connections []Connection
	dragging    int
	preview     *render.Point
	completed   bool
	env         games.Env
}

func New() *Game { return &Game{dragging: -1} }

func (g *Game) Name() string { return "web_builder" }

func (g *Game) Init(env games.Env) {
	g.env = env
	g.anchors = g.anchors[:0]
	g.connections = nil
	g.dragging = -1
	g.preview = nil
	g.completed = false
	cx, cy := render.SurfaceWidth/2, render.SurfaceHeight/2
	for r := 1; r <= Rings; r++ {
		radius := 50*float64(r) + 40
		for i := 0; i < AnchorsPerRing; i++ {
			ang := (2 * math.Pi / AnchorsPerRing) * float64(i)
			g.anchors = append(g.anchors, Anchor{
				Pos: render.Point{X: cx + math.Cos(ang)*radius, Y: cy + math.Sin(ang)*radius},
			})
		}
	}
}

// nearest returns the index of the anchor strictly closest to p within the
// pick radius, or -1. The first anchor wins a tie.
func (g *Game) nearest(p render.Point) int {
	best, bd := -1, math.Inf(1)
	for i, a := range g.anchors {
		d := a.Pos.Dist(p)
		if d < PickRadius && d < bd {
			best, bd = i, d
		}
	}
	return best
}

func (g *Game) PointerDown(p render.Point) {
	idx := g.nearest(p)
	if idx < 0 {
		return
	}
	if g.dragging >= 0 {
		g.anchors[g.dragging].Engaged = false
	}
	g.dragging = idx
	g.anchors[idx].Engaged = true
	g.preview = nil
	g.env.Sounds.Click()
}

func (g *Game) PointerMove(p render.Point) {
	if g.dragging < 0 {
		return
	}
	pt := p
	g.preview = &pt
}

func (g *Game) PointerUp(p render.Point) {
	if g.dragging < 0 {
		return
	}
	start := g.anchors[g.dragging]
	end := g.nearest(p)
	if end >= 0 && end != g.dragging {
		g.connections = append(g.connections, Connection{From: start.Pos, To: g.anchors[end].Pos})
		g.env.Sounds.Success()
	} else {
		g.env.Sounds.Fail()
	}
	g.anchors[g.dragging].Engaged = false
	g.dragging = -1
	g.preview = nil
	if len(g.connections) >= CompleteAt && !g.completed {
		g.completed = true
		g.env.Host.AwardBadge(games.BadgeWebMaster)
	}
}

func (g *Game) Click(render.Point) {}

func (g *Game) Anchors() []Anchor {
	out := make([]Anchor, len(g.anchors))
	copy(out, g.anchors)
	return out
}

func (g *Game) Connections() []Connection {
	out := make([]Connection, len(g.connections))
	copy(out, g.connections)
	return out
}

func (g *Game) Dragging() bool  { return g.dragging >= 0 }
func (g *Game) Completed() bool { return g.completed }

func (g *Game) Scene() *render.Scene {
	s := render.NewScene(colorBackground)
	s.Text(render.Point{X: 20, Y: 30}, Title, games.ColorInk)
	for _, c := range g.connections {
		s.Line(c.From, c.To, colorSilk)
	}
	if g.dragging >= 0 && g.preview != nil {
		s.DashedLine(g.anchors[g.dragging].Pos, *g.preview, colorPreview)
	}
	for _, a := range g.anchors {
		color := colorAnchor
		if a.Engaged {
			color = colorEngaged
		}
		s.Circle(a.Pos, 6, color)
	}
	if g.completed {
		s.Text(render.Point{X: 20, Y: render.SurfaceHeight - 30}, DoneBanner, games.ColorBanner)
	}
	return s
}
