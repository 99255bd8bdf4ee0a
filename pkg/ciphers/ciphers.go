// Package ciphers exposes the five classical ciphers behind one string-keyed
// interface, for callers that receive the cipher name and key as text.
package ciphers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
)

// ID identifies a cipher.
type ID string

const (
	Caesar    ID = "caesar"
	Vigenere  ID = "vigenere"
	Playfair  ID = "playfair"
	RailFence ID = "railfence"
	Columnar  ID = "columnar"
)

// Transformer is a cipher whose key is given as a string. Numeric keys are
// parsed by the implementation and a malformed key yields cipher.ErrInvalidKey.
type Transformer interface {
	ID() ID
	Name() string
	Encrypt(text, key string) (string, error)
	Decrypt(text, key string) (string, error)
	ValidateKey(key string) error
	Visualize(text, key string) (string, error)
	Grid(text, key string) (cipher.Grid, error)
}

// DecryptVisualizer is implemented by ciphers whose visualization shows the
// transformed text, so it differs by direction.
type DecryptVisualizer interface {
	VisualizeDecrypt(text, key string) (string, error)
}

// Visualize returns t's visualization of text. With decrypt set, ciphers that
// implement DecryptVisualizer show the decryption instead.
func Visualize(t Transformer, text, key string, decrypt bool) (string, error) {
	if dv, ok := t.(DecryptVisualizer); ok && decrypt {
		return dv.VisualizeDecrypt(text, key)
	}
	return t.Visualize(text, key)
}

// registry is ordered the way the chapters introduce the ciphers.
var registry = []Transformer{
	caesarCipher{},
	vigenereCipher{},
	playfairCipher{},
	railFenceCipher{},
	columnarCipher{},
}

// All returns every registered cipher in chapter order.
func All() []Transformer {
	out := make([]Transformer, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a cipher by ID, case-insensitively.
func Lookup(id string) (Transformer, error) {
	want := ID(strings.ToLower(strings.TrimSpace(id)))
	for _, t := range registry {
		if t.ID() == want {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", cipher.ErrUnknownCipher, id)
}

// parseInt reads an integer key.
func parseInt(key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", cipher.ErrInvalidKey, key)
	}
	return n, nil
}
