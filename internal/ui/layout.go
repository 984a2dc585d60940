package ui

// The smallest window whose canvas cells are fine enough that every cell
// centre lies within the Web Builder pick radius of any anchor inside it.
// Pointer events snap to cell centres, so a coarser canvas leaves anchors
// that no click can reach.
const (
	minCols = 100
	minRows = 32
)

func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < minCols || rows < minRows {
		return LayoutTooSmall
	}
	if cols >= 120 && rows >= 36 {
		return LayoutWide
	}
	return LayoutMedium
}

// canvasRect is the terminal region the game surface occupies: everything
// between the header row and the two footer rows.
type canvasRect struct {
	X, Y, W, H int
}

func canvasFor(cols, rows int) canvasRect {
	return canvasRect{X: 0, Y: 1, W: max(1, cols), H: max(1, rows-3)}
}

func (c canvasRect) contains(x, y int) bool {
	return x >= c.X && x < c.X+c.W && y >= c.Y && y < c.Y+c.H
}
