// Package railfence implements the zigzag Rail Fence transposition cipher.
package railfence

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
)

const (
	MinRails = 2
	MaxRails = 10
)

// Pattern returns the rail of each of n positions. The rail index starts at 0,
// moves down to rails-1, and bounces back up.
func Pattern(n, rails int) []int {
	pattern := make([]int, n)
	if rails < 2 {
		return pattern
	}

	rail, step := 0, 1
	for i := range pattern {
		pattern[i] = rail
		if rail == 0 {
			step = 1
		} else if rail == rails-1 {
			step = -1
		}
		rail += step
	}
	return pattern
}

// Encrypt writes plaintext along the zigzag and reads the rails top to bottom.
// Whitespace is stripped and letters uppercased. With fewer than two rails or
// empty input the text is returned unchanged. A rail count at or above the
// text length never bounces, so the cleaned text comes back as is.
func Encrypt(plaintext string, rails int) string {
	if rails < 2 || plaintext == "" {
		return plaintext
	}
	text := []rune(cipher.UpperNoSpace(plaintext))
	if rails >= len(text) {
		return string(text)
	}

	rows := make([][]rune, rails)
	for i, rail := range Pattern(len(text), rails) {
		rows[rail] = append(rows[rail], text[i])
	}

	out := make([]rune, 0, len(text))
	for _, row := range rows {
		out = append(out, row...)
	}
	return string(out)
}

// Decrypt fills the zigzag rail by rail with ciphertext and reads it back in
// zigzag order.
func Decrypt(ciphertext string, rails int) string {
	if rails < 2 || ciphertext == "" {
		return ciphertext
	}
	text := []rune(cipher.UpperNoSpace(ciphertext))
	if rails >= len(text) {
		return string(text)
	}
	pattern := Pattern(len(text), rails)

	// next[r] is the ciphertext index of rail r's next letter.
	next := make([]int, rails)
	for _, rail := range pattern {
		next[rail]++
	}
	offset := 0
	for rail, n := range next {
		next[rail] = offset
		offset += n
	}

	out := make([]rune, len(text))
	for i, rail := range pattern {
		out[i] = text[next[rail]]
		next[rail]++
	}
	return string(out)
}

// ValidateRails checks that rails is within [MinRails, MaxRails].
func ValidateRails(rails int) error {
	if rails < MinRails {
		return fmt.Errorf("%w: need at least %d, got %d", cipher.ErrTooFewRails, MinRails, rails)
	}
	if rails > MaxRails {
		return fmt.Errorf("%w: at most %d allowed, got %d", cipher.ErrTooManyRails, MaxRails, rails)
	}
	return nil
}

// Visualize returns one line per rail, holding that rail's letters at their
// original positions and dots elsewhere. Rails the zigzag never reaches are
// left out, so there are at most as many lines as letters.
func Visualize(text string, rails int) []string {
	clean := []rune(cipher.UpperNoSpace(text))
	if rails < 2 || len(clean) == 0 {
		return []string{string(clean)}
	}
	rails = min(rails, len(clean))
	pattern := Pattern(len(clean), rails)

	lines := make([]string, rails)
	for rail := range lines {
		var b strings.Builder
		for i, r := range clean {
			if pattern[i] == rail {
				b.WriteRune(r)
			} else {
				b.WriteByte('.')
			}
		}
		lines[rail] = b.String()
	}
	return lines
}

// Grid returns Visualize as cells.
func Grid(text string, rails int) cipher.Grid {
	lines := Visualize(text, rails)
	g := make(cipher.Grid, len(lines))
	for i, line := range lines {
		for _, r := range line {
			cell := string(r)
			if r == '.' {
				cell = ""
			}
			g[i] = append(g[i], cell)
		}
	}
	return g
}
