package cipher

import "strings"

// Grid is a rectangular table of single-character cells.
type Grid [][]string

// NewGrid allocates a rows x cols grid of empty cells.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]string, cols)
	}
	return g
}

// String renders the grid one row per line with cells separated by spaces.
// Empty cells render as a dot.
func (g Grid) String() string {
	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			if cell == "" {
				cell = "."
			}
			b.WriteString(cell)
		}
	}
	return b.String()
}
