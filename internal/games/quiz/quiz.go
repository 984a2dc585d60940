// Package quiz implements the three-question fact quiz.
package quiz

import (
	"fmt"
	"strings"

	"spiderquest/internal/content"
	"spiderquest/internal/games"
	"spiderquest/internal/render"
)

const (
	Title = "Fact Frenzy Quiz!"

	buttonX      = 40.0
	buttonY      = 160.0
	buttonStride = 70.0
	buttonW      = 820.0
	buttonH      = 50.0
	// Characters per prompt line at the surface's font size.
	wrapWidth = 60
)

const (
	colorBackground = "#e3f2ff"
	colorButton     = "#ffd6a5"
	colorBorder     = "#ff0088"
)

type Button struct {
	Rect  render.Rect
	Label string
}

type Game struct {
	games.NoInput

	questions []content.Question
	index     int
	correct   int
	done      bool
	buttons   []Button
	env       games.Env
}

func New(questions []content.Question) *Game {
	qs := make([]content.Question, len(questions))
	copy(qs, questions)
	return &Game{questions: qs}
}

func (g *Game) Name() string { return "quiz" }

func (g *Game) Init(env games.Env) {
	g.env = env
	g.index = 0
	g.correct = 0
	g.done = len(g.questions) == 0
	g.layout()
}

// layout computes the option buttons for the current question.
func (g *Game) layout() {
	g.buttons = nil
	if g.done {
		return
	}
	for i, opt := range g.questions[g.index].Options {
		g.buttons = append(g.buttons, Button{
			Rect:  render.Rect{X: buttonX, Y: buttonY + float64(i)*buttonStride, W: buttonW, H: buttonH},
			Label: fmt.Sprintf("%c. %s", 'A'+i, opt),
		})
	}
}

// Answer records a choice for the current question. Out of range choices
// and answers after the last question are ignored.
func (g *Game) Answer(option int) {
	if g.done || option < 0 || option >= len(g.questions[g.index].Options) {
		return
	}
	if option == g.questions[g.index].Correct {
		g.correct++
		g.env.Sounds.Success()
	} else {
		g.env.Sounds.Fail()
	}
	g.index++
	if g.index >= len(g.questions) {
		g.done = true
		g.env.Host.AwardBadge(games.BadgeSilkGenius)
		g.env.Host.RecordQuiz(g.correct)
	}
	g.layout()
}

func (g *Game) Click(p render.Point) {
	for i, b := range g.buttons {
		if b.Rect.Contains(p) {
			g.Answer(i)
			return
		}
	}
}

func (g *Game) Buttons() []Button {
	out := make([]Button, len(g.buttons))
	copy(out, g.buttons)
	return out
}

func (g *Game) Index() int   { return g.index }
func (g *Game) Correct() int { return g.correct }
func (g *Game) Done() bool   { return g.done }

func (g *Game) Scene() *render.Scene {
	s := render.NewScene(colorBackground)
	s.Text(render.Point{X: 20, Y: 40}, Title, games.ColorInk)
	if g.done {
		s.Text(render.Point{X: 20, Y: 80}, fmt.Sprintf("Score: %d/%d", g.correct, len(g.questions)), games.ColorInk)
		s.Text(render.Point{X: 20, Y: 120}, "Badge earned: "+games.BadgeSilkGenius, games.ColorInk)
		return s
	}
	y := 90.0
	for _, line := range wrap(g.questions[g.index].Prompt, wrapWidth) {
		s.Text(render.Point{X: 20, Y: y}, line, games.ColorInk)
		y += 30
	}
	for _, b := range g.buttons {
		s.Box(b.Rect, colorButton, colorBorder)
		s.Text(render.Point{X: b.Rect.X + 12, Y: b.Rect.Y + 32}, b.Label, games.ColorInk)
	}
	return s
}

func wrap(text string, width int) []string {
	var lines []string
	line := ""
	for _, w := range strings.Fields(text) {
		next := strings.TrimSpace(line + " " + w)
		if len(next) <= width || line == "" {
			line = next
			continue
		}
		lines = append(lines, line)
		line = w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
