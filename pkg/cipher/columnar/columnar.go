// Package columnar implements keyword-ordered columnar transposition.
package columnar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
)

// Padding fills the empty cells of the last row.
const Padding = 'X'

// MinKeywordLength is the shortest keyword ValidateKeyword accepts.
const MinKeywordLength = 2

// ColumnOrder returns, for each column of keyword, its 0-based rank when the
// keyword letters are sorted alphabetically. Equal letters rank left to right.
func ColumnOrder(keyword string) []int {
	key := []rune(cipher.UpperNoSpace(keyword))
	idx := make([]int, len(key))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return key[idx[a]] < key[idx[b]]
	})

	order := make([]int, len(key))
	for rank, col := range idx {
		order[col] = rank
	}
	return order
}

// readSequence inverts order: element k is the column read k-th.
func readSequence(order []int) []int {
	seq := make([]int, len(order))
	for col, rank := range order {
		seq[rank] = col
	}
	return seq
}

// fill lays text out row by row in cols columns, padding the last row.
func fill(text []rune, cols int) [][]rune {
	rows := (len(text) + cols - 1) / cols
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			i := r*cols + c
			if i < len(text) {
				grid[r][c] = text[i]
			} else {
				grid[r][c] = Padding
			}
		}
	}
	return grid
}

// Encrypt writes plaintext into rows under keyword and reads the columns out
// in rank order. Whitespace is stripped and letters uppercased.
func Encrypt(plaintext, keyword string) string {
	text := []rune(cipher.UpperNoSpace(plaintext))
	order := ColumnOrder(keyword)
	if len(text) == 0 || len(order) == 0 {
		return string(text)
	}

	grid := fill(text, len(order))
	out := make([]rune, 0, len(grid)*len(order))
	for _, col := range readSequence(order) {
		for r := range grid {
			out = append(out, grid[r][col])
		}
	}
	return string(out)
}

// Decrypt refills the columns in rank order and reads the grid back row by
// row. Trailing padding is removed from the end of the result.
func Decrypt(ciphertext, keyword string) string {
	text := []rune(cipher.UpperNoSpace(ciphertext))
	order := ColumnOrder(keyword)
	if len(text) == 0 || len(order) == 0 {
		return string(text)
	}

	cols := len(order)
	rows := (len(text) + cols - 1) / cols
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
	}

	next := 0
	for _, col := range readSequence(order) {
		for r := 0; r < rows && next < len(text); r++ {
			grid[r][col] = text[next]
			next++
		}
	}

	out := make([]rune, 0, len(text))
	for r := range grid {
		for _, ch := range grid[r] {
			if ch != 0 {
				out = append(out, ch)
			}
		}
	}
	return strings.TrimRight(string(out), string(Padding))
}

// GridView is the encryption layout, for rendering.
type GridView struct {
	Grid         cipher.Grid `json:"grid"`
	ColumnOrder  []int       `json:"column_order"`
	KeywordChars []string    `json:"keyword_chars"`
}

// GetGrid returns the padded grid Encrypt builds, with the column ranks and
// the keyword letters that head each column.
func GetGrid(text, keyword string) GridView {
	key := cipher.UpperNoSpace(keyword)
	order := ColumnOrder(key)
	view := GridView{
		Grid:         cipher.Grid{},
		ColumnOrder:  order,
		KeywordChars: strings.Split(key, ""),
	}
	if key == "" {
		view.KeywordChars = []string{}
	}

	clean := []rune(cipher.UpperNoSpace(text))
	if len(clean) == 0 || len(order) == 0 {
		return view
	}
	for _, row := range fill(clean, len(order)) {
		cells := make([]string, len(row))
		for c, ch := range row {
			cells[c] = string(ch)
		}
		view.Grid = append(view.Grid, cells)
	}
	return view
}

// Visualize renders the keyword with its ranks, the grid, and the columns in
// the order they are read.
func Visualize(text, keyword string) string {
	view := GetGrid(text, keyword)
	if len(view.KeywordChars) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Join(view.KeywordChars, " "))
	b.WriteByte('\n')
	ranks := make([]string, len(view.ColumnOrder))
	for i, rank := range view.ColumnOrder {
		ranks[i] = fmt.Sprint(rank + 1)
	}
	b.WriteString(strings.Join(ranks, " "))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", 2*len(view.KeywordChars)-1))
	if len(view.Grid) > 0 {
		b.WriteByte('\n')
		b.WriteString(view.Grid.String())
	}

	b.WriteString("\n\nRead columns in order:")
	for _, col := range readSequence(view.ColumnOrder) {
		var column strings.Builder
		for _, row := range view.Grid {
			column.WriteString(row[col])
		}
		fmt.Fprintf(&b, "\n%d. %s: %s", view.ColumnOrder[col]+1, view.KeywordChars[col], column.String())
	}
	return b.String()
}

// ValidateKeyword checks that keyword is non-empty, at least
// MinKeywordLength letters, and alphabetic.
func ValidateKeyword(keyword string) error {
	return cipher.ValidateKeyword(keyword, MinKeywordLength)
}
