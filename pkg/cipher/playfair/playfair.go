// Package playfair implements the Playfair digraph cipher.
package playfair

import (
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
)

// Filler breaks up doubled letters and pads an odd final letter.
const Filler = 'X'

// MinKeywordLength is the shortest keyword ValidateKeyword accepts.
const MinKeywordLength = 3

// Rule names the positional rule applied to a digraph.
type Rule string

const (
	RuleRow       Rule = "row"
	RuleColumn    Rule = "column"
	RuleRectangle Rule = "rectangle"
	// RuleUnknown means a letter was missing from the grid and the pair was left as is.
	RuleUnknown Rule = "unknown"
)

// Step records how one digraph was transformed.
type Step struct {
	Pair   string `json:"pair"`
	Rule   Rule   `json:"rule"`
	Result string `json:"result"`
}

// clean keeps letters only, uppercased, with J folded into I.
func clean(text string) string {
	return strings.ReplaceAll(cipher.LettersOnly(text), "J", "I")
}

// PrepareDigraphs splits text into pairs. A pair of equal letters becomes the
// letter plus Filler, and the second letter starts the next pair. An odd
// trailing letter is padded with Filler.
func PrepareDigraphs(text string) []string {
	s := clean(text)
	pairs := make([]string, 0, len(s)/2+1)

	for i := 0; i < len(s); {
		a := s[i]
		if i+1 >= len(s) {
			pairs = append(pairs, string([]byte{a, Filler}))
			break
		}
		b := s[i+1]
		if a == b {
			pairs = append(pairs, string([]byte{a, Filler}))
			i++
			continue
		}
		pairs = append(pairs, string([]byte{a, b}))
		i += 2
	}
	return pairs
}

// cipherPairs splits already well-formed ciphertext into pairs without the
// doubled-letter rule.
func cipherPairs(text string) []string {
	s := clean(text)
	if len(s)%2 == 1 {
		s += string(Filler)
	}
	pairs := make([]string, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		pairs = append(pairs, s[i:i+2])
	}
	return pairs
}

// Encrypt enciphers plaintext with the grid built from keyword.
func Encrypt(plaintext, keyword string) string {
	return join(Steps(plaintext, keyword, false))
}

// Decrypt deciphers ciphertext with the grid built from keyword. Filler
// letters inserted during encryption remain in the output.
func Decrypt(ciphertext, keyword string) string {
	return join(Steps(ciphertext, keyword, true))
}

func join(steps []Step) string {
	var b strings.Builder
	b.Grow(len(steps) * 2)
	for _, s := range steps {
		b.WriteString(s.Result)
	}
	return b.String()
}

// Steps transforms text pair by pair and reports the rule used for each.
func Steps(text, keyword string, decrypt bool) []Step {
	g := GenerateGrid(keyword)

	var pairs []string
	dir := 1
	if decrypt {
		pairs = cipherPairs(text)
		dir = -1
	} else {
		pairs = PrepareDigraphs(text)
	}

	steps := make([]Step, 0, len(pairs))
	for _, p := range pairs {
		result, rule := g.transformPair(p[0], p[1], dir)
		steps = append(steps, Step{Pair: p, Rule: rule, Result: result})
	}
	return steps
}

func (g *Grid) transformPair(a, b byte, dir int) (string, Rule) {
	r1, c1, ok1 := g.Find(a)
	r2, c2, ok2 := g.Find(b)
	if !ok1 || !ok2 {
		return string([]byte{a, b}), RuleUnknown
	}

	switch {
	case r1 == r2:
		return string([]byte{g.At(r1, c1+dir), g.At(r2, c2+dir)}), RuleRow
	case c1 == c2:
		return string([]byte{g.At(r1+dir, c1), g.At(r2+dir, c2)}), RuleColumn
	default:
		return string([]byte{g.At(r1, c2), g.At(r2, c1)}), RuleRectangle
	}
}

// ValidateKeyword checks that keyword is non-empty, at least
// MinKeywordLength letters, and alphabetic.
func ValidateKeyword(keyword string) error {
	return cipher.ValidateKeyword(keyword, MinKeywordLength)
}

// FormatCiphertext groups text into space-separated pairs for display.
func FormatCiphertext(text string) string {
	s := cipher.StripSpace(text)
	groups := make([]string, 0, len(s)/2+1)
	for i := 0; i < len(s); i += 2 {
		end := min(i+2, len(s))
		groups = append(groups, s[i:end])
	}
	return strings.Join(groups, " ")
}

// Visualize renders the key square, the digraphs, and the rule applied to
// each pair.
func Visualize(text, keyword string) string {
	var b strings.Builder
	b.WriteString("Grid:\n")
	b.WriteString(GenerateGrid(keyword).String())

	steps := Steps(text, keyword, false)
	if len(steps) == 0 {
		return b.String()
	}

	pairs := make([]string, len(steps))
	for i, s := range steps {
		pairs[i] = s.Pair
	}
	b.WriteString("\n\nDigraphs: ")
	b.WriteString(strings.Join(pairs, " "))
	b.WriteString("\n")
	for _, s := range steps {
		b.WriteString("\n")
		b.WriteString(s.Pair)
		b.WriteString(" -> ")
		b.WriteString(s.Result)
		b.WriteString(" (")
		b.WriteString(string(s.Rule))
		b.WriteString(")")
	}
	return b.String()
}
