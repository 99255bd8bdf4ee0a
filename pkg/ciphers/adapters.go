package ciphers

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/caesar"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/columnar"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/playfair"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/railfence"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/vigenere"
)

type caesarCipher struct{}

func (caesarCipher) ID() ID       { return Caesar }
func (caesarCipher) Name() string { return "Caesar" }

func (caesarCipher) Encrypt(text, key string) (string, error) {
	shift, err := parseInt(key)
	if err != nil {
		return "", err
	}
	return caesar.Encrypt(text, shift), nil
}

func (caesarCipher) Decrypt(text, key string) (string, error) {
	shift, err := parseInt(key)
	if err != nil {
		return "", err
	}
	return caesar.Decrypt(text, shift), nil
}

// ValidateKey accepts any integer; shifts are reduced mod 26.
func (caesarCipher) ValidateKey(key string) error {
	_, err := parseInt(key)
	return err
}

func (caesarCipher) Visualize(_, key string) (string, error) {
	shift, err := parseInt(key)
	if err != nil {
		return "", err
	}
	return caesar.Visualize(shift), nil
}

func (caesarCipher) Grid(_, key string) (cipher.Grid, error) {
	shift, err := parseInt(key)
	if err != nil {
		return nil, err
	}
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return cipher.Grid{
		strings.Split(alphabet, ""),
		strings.Split(caesar.Encrypt(alphabet, shift), ""),
	}, nil
}

type vigenereCipher struct{}

func (vigenereCipher) ID() ID       { return Vigenere }
func (vigenereCipher) Name() string { return "Vigenère" }

func (vigenereCipher) Encrypt(text, key string) (string, error) {
	return vigenere.Encrypt(text, key), nil
}

func (vigenereCipher) Decrypt(text, key string) (string, error) {
	return vigenere.Decrypt(text, key), nil
}

func (vigenereCipher) ValidateKey(key string) error {
	return vigenere.ValidateKeyword(key)
}

func (vigenereCipher) Visualize(text, key string) (string, error) {
	return vigenere.Visualize(text, key), nil
}

func (vigenereCipher) VisualizeDecrypt(text, key string) (string, error) {
	return vigenere.VisualizeDecrypt(text, key), nil
}

func (vigenereCipher) Grid(_, _ string) (cipher.Grid, error) {
	return vigenere.GenerateTableau(), nil
}

type playfairCipher struct{}

func (playfairCipher) ID() ID       { return Playfair }
func (playfairCipher) Name() string { return "Playfair" }

func (playfairCipher) Encrypt(text, key string) (string, error) {
	return playfair.Encrypt(text, key), nil
}

func (playfairCipher) Decrypt(text, key string) (string, error) {
	return playfair.Decrypt(text, key), nil
}

func (playfairCipher) ValidateKey(key string) error {
	return playfair.ValidateKeyword(key)
}

func (playfairCipher) Visualize(text, key string) (string, error) {
	return playfair.Visualize(text, key), nil
}

func (playfairCipher) Grid(_, key string) (cipher.Grid, error) {
	return playfair.GenerateGrid(key).Rows(), nil
}

type railFenceCipher struct{}

func (railFenceCipher) ID() ID       { return RailFence }
func (railFenceCipher) Name() string { return "Rail Fence" }

func (railFenceCipher) Encrypt(text, key string) (string, error) {
	rails, err := parseInt(key)
	if err != nil {
		return "", err
	}
	return railfence.Encrypt(text, rails), nil
}

func (railFenceCipher) Decrypt(text, key string) (string, error) {
	rails, err := parseInt(key)
	if err != nil {
		return "", err
	}
	return railfence.Decrypt(text, rails), nil
}

func (railFenceCipher) ValidateKey(key string) error {
	rails, err := parseInt(key)
	if err != nil {
		return err
	}
	return railfence.ValidateRails(rails)
}

func (railFenceCipher) Visualize(text, key string) (string, error) {
	rails, err := parseRails(key)
	if err != nil {
		return "", err
	}
	return strings.Join(railfence.Visualize(text, rails), "\n"), nil
}

func (railFenceCipher) Grid(text, key string) (cipher.Grid, error) {
	rails, err := parseRails(key)
	if err != nil {
		return nil, err
	}
	return railfence.Grid(text, rails), nil
}

// parseRails reads a rail count for the views, which draw one row per rail.
// Counts outside [railfence.MinRails, railfence.MaxRails] are invalid keys.
func parseRails(key string) (int, error) {
	rails, err := parseInt(key)
	if err != nil {
		return 0, err
	}
	if err := railfence.ValidateRails(rails); err != nil {
		return 0, fmt.Errorf("%w: %w", cipher.ErrInvalidKey, err)
	}
	return rails, nil
}

type columnarCipher struct{}

func (columnarCipher) ID() ID       { return Columnar }
func (columnarCipher) Name() string { return "Columnar Transposition" }

func (columnarCipher) Encrypt(text, key string) (string, error) {
	return columnar.Encrypt(text, key), nil
}

func (columnarCipher) Decrypt(text, key string) (string, error) {
	return columnar.Decrypt(text, key), nil
}

func (columnarCipher) ValidateKey(key string) error {
	return columnar.ValidateKeyword(key)
}

func (columnarCipher) Visualize(text, key string) (string, error) {
	return columnar.Visualize(text, key), nil
}

func (columnarCipher) Grid(text, key string) (cipher.Grid, error) {
	return columnar.GetGrid(text, key).Grid, nil
}
