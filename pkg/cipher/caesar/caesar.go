// Package caesar implements the Caesar shift cipher and a frequency based
// brute-force solver.
package caesar

import (
	"sort"
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Encrypt shifts every letter of text forward by shift positions, wrapping
// around the alphabet. Case is kept and non-letters pass through.
func Encrypt(text string, shift int) string {
	s := rune(normalizeShift(shift))
	if s == 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+s)%26
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+s)%26
		default:
			return r
		}
	}, text)
}

// Decrypt reverses Encrypt.
func Decrypt(text string, shift int) string {
	return Encrypt(text, -shift)
}

func normalizeShift(shift int) int {
	return ((shift % 26) + 26) % 26
}

// ValidateSolution reports whether attempted matches the decryption of
// encrypted under expectedShift, ignoring case and whitespace.
func ValidateSolution(encrypted, attempted string, expectedShift int) bool {
	want := cipher.UpperNoSpace(Decrypt(encrypted, expectedShift))
	return want == cipher.UpperNoSpace(attempted)
}

// Visualize shows the plain alphabet above the alphabet produced by shift.
func Visualize(shift int) string {
	return "Plain:  " + spaced(alphabet) + "\nCipher: " + spaced(Encrypt(alphabet, shift))
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// Candidate is one brute-force guess.
type Candidate struct {
	Shift int     `json:"shift"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// commonWords are weighted by length when scoring a candidate.
var commonWords = []string{
	"THE", "AND", "THAT", "HAVE", "FOR", "NOT", "WITH", "YOU", "THIS", "BUT",
	"HIS", "FROM", "THEY", "WAS", "ARE", "HER", "SHE", "WILL", "ONE", "ALL",
	"THERE", "THEIR", "WHAT", "BEEN", "HAS", "OUR", "YOUR", "WE", "MY", "BY",
	"OF", "TO", "IN", "IS", "IT", "AT", "ON", "BE",
}

const frequentLetters = "ETAOIN"

// BruteForce decrypts ciphertext under all 26 shifts and returns the
// candidates ordered from most to least English-looking.
func BruteForce(ciphertext string) []Candidate {
	candidates := make([]Candidate, 0, 26)
	for shift := 0; shift < 26; shift++ {
		text := Decrypt(ciphertext, shift)
		candidates = append(candidates, Candidate{
			Shift: shift,
			Text:  text,
			Score: Score(text),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// Score rates how much text looks like English: each common word adds its
// length per occurrence, and each of E, T, A, O, I, N adds 0.1.
func Score(text string) float64 {
	upper := strings.ToUpper(text)

	var score float64
	for _, word := range commonWords {
		score += float64(len(word) * strings.Count(upper, word))
	}
	for _, r := range upper {
		if strings.ContainsRune(frequentLetters, r) {
			score += 0.1
		}
	}
	return score
}
