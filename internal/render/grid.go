package render

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
)

// Cell is one terminal character with its colors.
type Cell struct {
	Ch rune
	Fg string
	Bg string
}

// Grid is a rasterised scene.
type Grid struct {
	Cols  int
	Rows  int
	Cells [][]Cell
}

// Mapper converts between canvas cells and surface coordinates.
type Mapper struct {
	Cols int
	Rows int
}

func (m Mapper) cellW() float64 { return SurfaceWidth / float64(max(1, m.Cols)) }
func (m Mapper) cellH() float64 { return SurfaceHeight / float64(max(1, m.Rows)) }

// ToSurface returns the surface point at the centre of cell (col, row).
func (m Mapper) ToSurface(col, row int) Point {
	return Point{
		X: (float64(col) + 0.5) * m.cellW(),
		Y: (float64(row) + 0.5) * m.cellH(),
	}
}

// ToCell returns the cell containing p, clamped to the grid.
func (m Mapper) ToCell(p Point) (int, int) {
	col := int(math.Floor(p.X / m.cellW()))
	row := int(math.Floor(p.Y / m.cellH()))
	return clamp(col, 0, m.Cols-1), clamp(row, 0, m.Rows-1)
}

// Rasterize paints the scene onto a cols x rows grid.
func Rasterize(scene *Scene, cols, rows int) Grid {
	cols, rows = max(1, cols), max(1, rows)
	g := Grid{Cols: cols, Rows: rows, Cells: make([][]Cell, rows)}
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, cols)
		for c := range g.Cells[r] {
			g.Cells[r][c] = Cell{Ch: ' ', Bg: scene.Background}
		}
	}
	m := Mapper{Cols: cols, Rows: rows}
	for _, sh := range scene.Shapes {
		switch sh.Kind {
		case ShapeFill:
			g.fill(m, sh.Rect, sh.Fill)
		case ShapeBox:
			g.box(m, sh.Rect, sh.Fill, sh.Color)
		case ShapeCircle:
			g.circle(m, sh.Center, sh.Radius, sh.Color)
		case ShapeLine:
			g.line(m, sh.From, sh.To, sh.Color, sh.Dashed)
		case ShapeText:
			g.text(m, sh.At, sh.Text, sh.Color)
		}
	}
	return g
}

func (g *Grid) set(col, row int, ch rune, fg string) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	cell := &g.Cells[row][col]
	cell.Ch = ch
	if fg != "" {
		cell.Fg = fg
	}
}

func (g *Grid) fill(m Mapper, r Rect, bg string) {
	c0, r0 := m.ToCell(Point{X: r.X, Y: r.Y})
	c1, r1 := m.ToCell(Point{X: r.X + r.W, Y: r.Y + r.H})
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.Cells[row][col] = Cell{Ch: ' ', Bg: bg}
		}
	}
}

func (g *Grid) box(m Mapper, r Rect, fill, border string) {
	g.fill(m, r, fill)
	c0, r0 := m.ToCell(Point{X: r.X, Y: r.Y})
	c1, r1 := m.ToCell(Point{X: r.X + r.W, Y: r.Y + r.H})
	if r1 <= r0 {
		for col := c0; col <= c1; col++ {
			g.set(col, r0, '▔', border)
		}
		return
	}
	for col := c0 + 1; col < c1; col++ {
		g.set(col, r0, '─', border)
		g.set(col, r1, '─', border)
	}
	for row := r0 + 1; row < r1; row++ {
		g.set(c0, row, '│', border)
		g.set(c1, row, '│', border)
	}
	g.set(c0, r0, '┌', border)
	g.set(c1, r0, '┐', border)
	g.set(c0, r1, '└', border)
	g.set(c1, r1, '┘', border)
}

// circle marks every cell whose centre lies inside the circle, and always the
// cell holding the centre so small dots stay visible.
func (g *Grid) circle(m Mapper, c Point, radius float64, fg string) {
	cc, cr := m.ToCell(c)
	g.set(cc, cr, '●', fg)
	c0, r0 := m.ToCell(Point{X: c.X - radius, Y: c.Y - radius})
	c1, r1 := m.ToCell(Point{X: c.X + radius, Y: c.Y + radius})
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if m.ToSurface(col, row).Dist(c) <= radius {
				g.set(col, row, '●', fg)
			}
		}
	}
}

func (g *Grid) line(m Mapper, from, to Point, fg string, dashed bool) {
	x0, y0 := m.ToCell(from)
	x1, y1 := m.ToCell(to)
	ch := lineRune(x1-x0, y1-y0)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	step := 0
	err := dx + dy
	for {
		if !dashed || (step/2)%2 == 0 {
			if g.Cells[y0][x0].Ch != '●' {
				g.set(x0, y0, ch, fg)
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		step++
	}
}

func (g *Grid) text(m Mapper, at Point, s, fg string) {
	// Baseline sits near the bottom of the glyph box; nudge up a little.
	col, row := m.ToCell(Point{X: at.X, Y: at.Y - 4})
	for _, ch := range s {
		if col >= g.Cols {
			return
		}
		g.set(col, row, ch, fg)
		col++
	}
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		if abs(dx) > 2*abs(dy) {
			return '─'
		}
		return '╲'
	default:
		if abs(dx) > 2*abs(dy) {
			return '─'
		}
		return '╱'
	}
}

// Render converts the grid to styled terminal text.
func (g Grid) Render() string {
	var b strings.Builder
	for r, row := range g.Cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i].Fg == row[start].Fg && row[i].Bg == row[start].Bg {
				continue
			}
			b.WriteString(styleFor(row[start]).Render(runString(row[start:i])))
			start = i
		}
	}
	return b.String()
}

// Plain returns the grid text without styling.
func (g Grid) Plain() string {
	lines := make([]string, len(g.Cells))
	for r, row := range g.Cells {
		lines[r] = runString(row)
	}
	return strings.Join(lines, "\n")
}

func styleFor(c Cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.Fg != "" {
		st = st.Foreground(lipgloss.Color(c.Fg))
	}
	if c.Bg != "" {
		st = st.Background(lipgloss.Color(c.Bg))
	}
	return st
}

func runString(cells []Cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.Ch
	}
	return string(rs)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
