package railfence

import (
	"errors"
	"testing"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 1, 0, 1, 2, 1, 0}, Pattern(9, 3))
	assert.Equal(t, []int{0, 1, 0, 1, 0}, Pattern(5, 2))
	assert.Equal(t, []int{0, 1, 2, 3}, Pattern(4, 4))
	assert.Equal(t, []int{0, 0, 0}, Pattern(3, 1))
}

func TestEncrypt(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		rails    int
		expected string
	}{
		{"chapter four", "PEOPLE POWER INHERENT FREEDOM", 3, "PLWNEROEPEOEIHRNFEDMOPRETE"},
		{"classic", "WE ARE DISCOVERED FLEE AT ONCE", 3, "WECRLTEERDSOEEFEAOCAIVDEN"},
		{"two rails", "abcdef", 2, "ACEBDF"},
		{"one rail is a no-op", "keep me", 1, "keep me"},
		{"empty", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Encrypt(tt.text, tt.rails))
		})
	}
}

func TestDecrypt_ChapterFour(t *testing.T) {
	assert.Equal(t, "PEOPLEPOWERINHERENTFREEDOM", Decrypt("PLWNEROEPEOEIHRNFEDMOPRETE", 3))
}

func TestDecrypt_TwoRails(t *testing.T) {
	// even positions come from the first half, odd positions from the second
	assert.Equal(t, "ABCDEF", Decrypt("ACEBDF", 2))
	assert.Equal(t, "ABCDE", Decrypt("ACEBD", 2))
}

func TestRailsEqualLength(t *testing.T) {
	p := "AMULET"
	assert.Equal(t, p, Encrypt(p, len(p)))
	assert.Equal(t, p, Decrypt(p, len(p)))
}

func TestRoundTrip(t *testing.T) {
	p := "THEAMULETWASBLESSEDBYMYGRANDMOTHER"
	for rails := 2; rails <= 12; rails++ {
		assert.Equal(t, p, Decrypt(Encrypt(p, rails), rails), "rails %d", rails)
	}
}

func TestNoOp(t *testing.T) {
	assert.Equal(t, "abc def", Decrypt("abc def", 0))
	assert.Equal(t, "abc def", Encrypt("abc def", -1))
	assert.Equal(t, "", Decrypt("", 4))
}

func TestValidateRails(t *testing.T) {
	assert.True(t, errors.Is(ValidateRails(1), cipher.ErrTooFewRails))
	assert.True(t, errors.Is(ValidateRails(11), cipher.ErrTooManyRails))
	assert.NoError(t, ValidateRails(2))
	assert.NoError(t, ValidateRails(10))
}

func TestVisualize(t *testing.T) {
	lines := Visualize("WEAREDISCOVERED", 3)
	require.Len(t, lines, 3)
	assert.Equal(t, "W...E...C...R..", lines[0])
	assert.Equal(t, ".E.R.D.S.O.E.E.", lines[1])
	assert.Equal(t, "..A...I...V...D", lines[2])

	assert.Equal(t, []string{"ABC"}, Visualize("abc", 1))
}

func TestGrid(t *testing.T) {
	g := Grid("ABCD", 2)
	require.Len(t, g, 2)
	assert.Equal(t, []string{"A", "", "C", ""}, []string(g[0]))
	assert.Equal(t, []string{"", "B", "", "D"}, []string(g[1]))
}

func TestRailsBeyondText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		rails int
	}{
		{"one past length", "amulet", 7},
		{"above max", "PEOPLE POWER", MaxRails + 1},
		{"huge", "PEOPLE POWER", 1 << 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean := cipher.UpperNoSpace(tt.text)
			assert.Equal(t, clean, Encrypt(tt.text, tt.rails))
			assert.Equal(t, clean, Decrypt(tt.text, tt.rails))

			lines := Visualize(tt.text, tt.rails)
			require.Len(t, lines, len(clean))
			for _, line := range lines {
				assert.Len(t, line, len(clean))
			}
			assert.Len(t, Grid(tt.text, tt.rails), len(clean))
		})
	}
}

func TestVisualize_HugeRailsShortText(t *testing.T) {
	lines := Visualize("AB", 1<<30)
	assert.Equal(t, []string{"A.", ".B"}, lines)
}

func TestPunctuationIsTransposed(t *testing.T) {
	// Only whitespace is stripped before transposing. Punctuation moves with
	// the letters around it, so the letters-only output of the substitution
	// ciphers does not hold here.
	enc := Encrypt("AB,CD!", 2)
	assert.Equal(t, "A,DBC!", enc)
	assert.Equal(t, "AB,CD!", Decrypt(enc, 2))
}
