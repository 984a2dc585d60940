package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// composeOverlayAt paints overlay over base with its top-left corner at
// (startRow, startCol). Styling on both sides of the overlay is preserved.
func composeOverlayAt(base, overlay string, cols, rows, startRow, startCol int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < rows {
		baseLines = append(baseLines, "")
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	ow := 1
	for _, line := range overlayLines {
		ow = max(ow, ansi.StringWidth(line))
	}
	ow = min(ow, cols)
	startCol = max(0, min(startCol, cols-ow))
	startRow = max(0, startRow)

	for i, line := range overlayLines {
		row := startRow + i
		if row >= rows {
			break
		}
		bl := padWidth(baseLines[row], cols)
		src := padWidth(ansi.Truncate(line, ow, ""), ow)
		baseLines[row] = ansi.Truncate(bl, startCol, "") + ansi.ResetStyle + src + ansi.ResetStyle + ansi.TruncateLeft(bl, startCol+ow, "")
	}
	return strings.Join(baseLines[:rows], "\n")
}

func padWidth(s string, width int) string {
	if d := width - ansi.StringWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func padRune(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func firstNonEmptyStr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
