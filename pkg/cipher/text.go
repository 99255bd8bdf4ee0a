// Package cipher holds the pieces shared by the classical cipher packages:
// sentinel errors, the Validation result, grids, and text normalization.
package cipher

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return IsUpper(r) || (r >= 'a' && r <= 'z')
}

// IsUpper reports whether r is in A-Z.
func IsUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// StripSpace removes every whitespace rune from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// UpperNoSpace strips whitespace and uppercases s.
func UpperNoSpace(s string) string {
	return strings.ToUpper(StripSpace(s))
}

// LettersOnly uppercases s and drops everything outside A-Z.
// Accented letters are folded first, so "Ñ" survives as "N", and full case
// mapping turns "ß" into "SS".
func LettersOnly(s string) string {
	upper := cases.Upper(language.Und).String(Fold(s))
	return strings.Map(func(r rune) rune {
		if IsUpper(r) {
			return r
		}
		return -1
	}, upper)
}

// Fold strips diacritics from s.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
