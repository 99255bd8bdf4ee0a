// Package vigenere implements the repeating-keyword Vigenère cipher and the
// tabula recta it is read from.
package vigenere

import (
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
)

// MinKeywordLength is the shortest keyword ValidateKeyword accepts.
const MinKeywordLength = 3

// Encrypt strips whitespace from plaintext, uppercases it, and shifts each
// letter by the matching keyword letter. Characters outside A-Z are copied
// through and do not advance the keyword.
func Encrypt(plaintext, keyword string) string {
	return transform(plaintext, keyword, 1)
}

// Decrypt reverses Encrypt.
func Decrypt(ciphertext, keyword string) string {
	return transform(ciphertext, keyword, -1)
}

func transform(text, keyword string, dir int) string {
	text = cipher.UpperNoSpace(text)
	key := cleanKeyword(keyword)
	if text == "" || key == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(text))
	i := 0
	for _, r := range text {
		if !cipher.IsUpper(r) {
			out.WriteRune(r)
			continue
		}
		shift := int(key[i%len(key)] - 'A')
		p := int(r - 'A')
		var c int
		if dir > 0 {
			c = (p + shift) % 26
		} else {
			c = (p - shift + 26) % 26
		}
		out.WriteByte(byte('A' + c))
		i++
	}
	return out.String()
}

// cleanKeyword uppercases keyword and keeps only A-Z.
func cleanKeyword(keyword string) string {
	return strings.Map(func(r rune) rune {
		if cipher.IsUpper(r) {
			return r
		}
		return -1
	}, strings.ToUpper(keyword))
}

// GenerateTableau returns the 26x26 tabula recta, where row r is the
// alphabet shifted left by r.
func GenerateTableau() cipher.Grid {
	g := cipher.NewGrid(26, 26)
	for r := 0; r < 26; r++ {
		for c := 0; c < 26; c++ {
			g[r][c] = string(rune('A' + (r+c)%26))
		}
	}
	return g
}

// ValidateKeyword checks that keyword is non-empty, at least
// MinKeywordLength letters, and alphabetic.
func ValidateKeyword(keyword string) error {
	return cipher.ValidateKeyword(keyword, MinKeywordLength)
}

// Visualize lines up the cleaned text, the repeating key stream, and the
// encrypted output so each column reads as one tableau lookup.
func Visualize(text, keyword string) string {
	return visualize(text, keyword, "Encrypted: ", Encrypt)
}

// VisualizeDecrypt is Visualize for ciphertext: the last row holds the
// decrypted output.
func VisualizeDecrypt(text, keyword string) string {
	return visualize(text, keyword, "Decrypted: ", Decrypt)
}

func visualize(text, keyword, label string, transform func(string, string) string) string {
	text = cipher.UpperNoSpace(text)
	key := cleanKeyword(keyword)
	if text == "" || key == "" {
		return ""
	}

	var stream strings.Builder
	i := 0
	for _, r := range text {
		if !cipher.IsUpper(r) {
			stream.WriteByte(' ')
			continue
		}
		stream.WriteByte(key[i%len(key)])
		i++
	}

	return "Text:      " + text + "\n" +
		"Key:       " + stream.String() + "\n" +
		label + transform(text, key)
}
