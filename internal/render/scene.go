// Package render describes frames on the 900x600 logical surface and
// rasterises them onto a grid of terminal cells.
package render

import "math"

const (
	SurfaceWidth  = 900.0
	SurfaceHeight = 600.0
)

type Point struct {
	X float64
	Y float64
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

type ShapeKind int

const (
	ShapeFill ShapeKind = iota
	ShapeCircle
	ShapeLine
	ShapeBox
	ShapeText
)

// Shape is one display-list entry. Colors are "#rrggbb".
type Shape struct {
	Kind   ShapeKind
	Rect   Rect
	Center Point
	Radius float64
	From   Point
	To     Point
	Dashed bool
	At     Point
	Text   string
	Color  string
	Fill   string
}

// Scene is an ordered display list; later shapes paint over earlier ones.
type Scene struct {
	Background string
	Shapes     []Shape
}

func NewScene(background string) *Scene {
	return &Scene{Background: background}
}

func (s *Scene) Circle(c Point, r float64, color string) *Scene {
	s.Shapes = append(s.Shapes, Shape{Kind: ShapeCircle, Center: c, Radius: r, Color: color})
	return s
}

func (s *Scene) Line(from, to Point, color string) *Scene {
	s.Shapes = append(s.Shapes, Shape{Kind: ShapeLine, From: from, To: to, Color: color})
	return s
}

func (s *Scene) DashedLine(from, to Point, color string) *Scene {
	s.Shapes = append(s.Shapes, Shape{Kind: ShapeLine, From: from, To: to, Color: color, Dashed: true})
	return s
}

// Box is a filled rectangle with a border.
func (s *Scene) Box(r Rect, fill, border string) *Scene {
	s.Shapes = append(s.Shapes, Shape{Kind: ShapeBox, Rect: r, Fill: fill, Color: border})
	return s
}

// Text places a single line with its baseline-left corner at p.
func (s *Scene) Text(p Point, text, color string) *Scene {
	s.Shapes = append(s.Shapes, Shape{Kind: ShapeText, At: p, Text: text, Color: color})
	return s
}

// Texts returns every text string in paint order.
func (s *Scene) Texts() []string {
	out := []string{}
	for _, sh := range s.Shapes {
		if sh.Kind == ShapeText {
			out = append(out, sh.Text)
		}
	}
	return out
}
