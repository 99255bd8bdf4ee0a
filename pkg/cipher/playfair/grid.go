package playfair

import (
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
)

// Size is the width and height of a Playfair grid.
const Size = 5

// alphabet is the 25-letter Playfair alphabet; J is merged into I.
const alphabet = "ABCDEFGHIKLMNOPQRSTUVWXYZ"

type position struct {
	row, col int
}

// Grid is a 5x5 Playfair key square.
type Grid struct {
	cells [Size][Size]byte
	pos   map[byte]position
}

// GenerateGrid lays out the distinct letters of keyword (J read as I),
// followed by the rest of the alphabet, row by row.
func GenerateGrid(keyword string) *Grid {
	g := &Grid{pos: make(map[byte]position, Size*Size)}

	i := 0
	place := func(ch byte) {
		if _, ok := g.pos[ch]; ok {
			return
		}
		p := position{row: i / Size, col: i % Size}
		g.cells[p.row][p.col] = ch
		g.pos[ch] = p
		i++
	}

	for _, r := range strings.ToUpper(keyword) {
		if !cipher.IsUpper(r) {
			continue
		}
		if r == 'J' {
			r = 'I'
		}
		place(byte(r))
	}
	for j := 0; j < len(alphabet); j++ {
		place(alphabet[j])
	}
	return g
}

// At returns the letter at row, col. Coordinates wrap.
func (g *Grid) At(row, col int) byte {
	return g.cells[mod(row, Size)][mod(col, Size)]
}

// Find returns the row and column of letter, and false if it is not in the grid.
func (g *Grid) Find(letter byte) (row, col int, ok bool) {
	p, ok := g.pos[letter]
	return p.row, p.col, ok
}

// Rows returns the grid as cells for display or JSON.
func (g *Grid) Rows() cipher.Grid {
	out := cipher.NewGrid(Size, Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[r][c] = string(g.cells[r][c])
		}
	}
	return out
}

func (g *Grid) String() string {
	return g.Rows().String()
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
