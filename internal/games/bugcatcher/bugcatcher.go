// Package bugcatcher implements the timed click-the-prey mode.
package bugcatcher

import (
	"fmt"
	"time"

	"spiderquest/internal/clock"
	"spiderquest/internal/games"
	"spiderquest/internal/render"
)

const (
	Population  = 10
	PreyChance  = 0.7
	MaxSpeed    = 3.0
	RoundLength = 30
	HitRadius   = 14.0
	PreyPoints  = 5
	StingPoints = -3

	TickPeriod    = time.Second
	PhysicsPeriod = time.Second / 60

	Title      = "Bug Catcher: Click the prey. Avoid stingers!"
	DoneBanner = "Nice hunting! Badge earned: Bug Buster"
)

const (
	colorBackground = "#fff0f6"
	colorPrey       = "#55efc4"
	colorStinger    = "#fd79a8"
)

type Bug struct {
	Pos    render.Point
	VX, VY float64
	IsPrey bool
}

type Game struct {
	games.NoInput

	bugs      []Bug
	score     int
	remaining int
	over      bool
	env       games.Env
	countdown clock.Timer
	physics   clock.Timer
}

func New() *Game { return &Game{} }

func (g *Game) Name() string { return "bug_catcher" }

func (g *Game) Init(env games.Env) {
	g.env = env
	g.bugs = g.bugs[:0]
	g.score = 0
	g.remaining = RoundLength
	g.over = false
	for i := 0; i < Population; i++ {
		g.spawn()
	}
	if env.Timers != nil {
		g.countdown = env.Timers.Every(TickPeriod, g.tick)
		g.physics = env.Timers.Every(PhysicsPeriod, g.Step)
	}
}

// spawn draws prey, x, y, vx, vy in that order.
func (g *Game) spawn() {
	r := g.env.Rand
	prey := r.Float64() < PreyChance
	x := r.Float64() * render.SurfaceWidth
	y := r.Float64() * render.SurfaceHeight
	vx := (r.Float64()*2 - 1) * MaxSpeed
	vy := (r.Float64()*2 - 1) * MaxSpeed
	g.bugs = append(g.bugs, Bug{Pos: render.Point{X: x, Y: y}, VX: vx, VY: vy, IsPrey: prey})
}

// Step advances every bug by one physics frame.
func (g *Game) Step() {
	if g.over {
		return
	}
	for i := range g.bugs {
		b := &g.bugs[i]
		b.Pos.X += b.VX
		b.Pos.Y += b.VY
		if b.Pos.X < 0 || b.Pos.X > render.SurfaceWidth {
			b.VX = -b.VX
		}
		if b.Pos.Y < 0 || b.Pos.Y > render.SurfaceHeight {
			b.VY = -b.VY
		}
	}
}

func (g *Game) tick() {
	if g.over {
		return
	}
	g.remaining--
	if g.remaining > 0 {
		return
	}
	g.remaining = 0
	g.over = true
	g.stopTimers()
	g.env.Host.RecordBugScore(g.score)
	g.env.Host.AwardBadge(games.BadgeBugBuster)
}

func (g *Game) stopTimers() {
	if g.countdown != nil {
		g.countdown.Stop()
	}
	if g.physics != nil {
		g.physics.Stop()
	}
}

// Click hits the most recently spawned bug within reach.
func (g *Game) Click(p render.Point) {
	if g.over {
		return
	}
	for i := len(g.bugs) - 1; i >= 0; i-- {
		b := g.bugs[i]
		if b.Pos.Dist(p) >= HitRadius {
			continue
		}
		if b.IsPrey {
			g.score += PreyPoints
			g.env.Sounds.Success()
		} else {
			g.score += StingPoints
			g.env.Sounds.Fail()
		}
		g.bugs = append(g.bugs[:i], g.bugs[i+1:]...)
		g.spawn()
		return
	}
}

func (g *Game) Bugs() []Bug {
	out := make([]Bug, len(g.bugs))
	copy(out, g.bugs)
	return out
}

func (g *Game) Score() int            { return g.score }
func (g *Game) SecondsRemaining() int { return g.remaining }
func (g *Game) Over() bool            { return g.over }

func (g *Game) Scene() *render.Scene {
	s := render.NewScene(colorBackground)
	s.Text(render.Point{X: 20, Y: 30}, Title, games.ColorInk)
	s.Text(render.Point{X: 20, Y: 60}, fmt.Sprintf("Score: %d", g.score), games.ColorInk)
	s.Text(render.Point{X: 140, Y: 60}, fmt.Sprintf("Time: %d", g.remaining), games.ColorInk)
	for _, b := range g.bugs {
		color := colorStinger
		if b.IsPrey {
			color = colorPrey
		}
		s.Circle(b.Pos, 12, color)
	}
	if g.over {
		s.Text(render.Point{X: 20, Y: render.SurfaceHeight - 30}, DoneBanner, games.ColorBanner)
	}
	return s
}
