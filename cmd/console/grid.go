package main

import (
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
	"github.com/mattn/go-runewidth"
)

// renderGrid lays out g with every column padded to the widest cell, measured
// in terminal cells so wide runes stay aligned.
func renderGrid(g cipher.Grid) string {
	if len(g) == 0 {
		return ""
	}

	cols := 0
	for _, row := range g {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for _, row := range g {
		for c, cell := range row {
			widths[c] = max(widths[c], runewidth.StringWidth(displayCell(cell)))
		}
	}

	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteString("\n")
		}
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(row) {
				cell = displayCell(row[c])
			}
			if c > 0 {
				b.WriteString(" ")
			}
			b.WriteString(runewidth.FillRight(cell, widths[c]))
		}
	}
	return b.String()
}

func displayCell(cell string) string {
	if cell == "" {
		return "·"
	}
	return cell
}
