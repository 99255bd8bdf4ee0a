// Package chapter holds the puzzle chapters: each pairs a cipher and key with
// a ciphertext and the plaintext the player must recover.
package chapter

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/cipher"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
)

//go:embed chapters/*.json
var builtinFS embed.FS

var (
	// ErrChapterNotFound is returned when a chapter number is not in the catalog.
	ErrChapterNotFound = errors.New("chapter not found")

	// ErrMismatch is returned by Verify when ciphertext, key and solution disagree.
	ErrMismatch = errors.New("ciphertext does not match solution")
)

// Chapter is one puzzle.
type Chapter struct {
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	Cipher     ciphers.ID `json:"cipher"`
	Key        string     `json:"key"`
	Ciphertext string     `json:"ciphertext"`
	Solution   string     `json:"solution,omitempty"`
	Accepted   []string   `json:"accepted,omitempty"` // other spellings of a correct answer, e.g. with Playfair fillers
	Hints      []string   `json:"hints,omitempty"`

	// Requires is the number of the chapter that must be solved before this
	// one. The catalog sets it from the chapter before in number order; zero
	// means the chapter is open from the start.
	Requires int `json:"-"`
}

// Normalize folds accents, drops everything but letters, and uppercases.
func Normalize(s string) string {
	return cipher.LettersOnly(s)
}

// Check reports whether answer matches the solution or an accepted form.
func (c *Chapter) Check(answer string) bool {
	got := Normalize(answer)
	if got == "" {
		return false
	}
	if got == Normalize(c.Solution) {
		return true
	}
	for _, a := range c.Accepted {
		if got == Normalize(a) {
			return true
		}
	}
	return false
}

// Hint returns the hint to show after the given number of failed attempts.
// No hint is shown before the first attempt; after the hints run out the
// last one repeats.
func (c *Chapter) Hint(failedAttempts int) string {
	if failedAttempts <= 0 || len(c.Hints) == 0 {
		return ""
	}
	return c.Hints[min(failedAttempts, len(c.Hints))-1]
}

// Redacted returns a copy without the solution or accepted answers.
func (c Chapter) Redacted() Chapter {
	c.Solution = ""
	c.Accepted = nil
	c.Hints = append([]string(nil), c.Hints...)
	return c
}

// Verify decrypts the ciphertext with the chapter key and checks it against
// the solution, then checks the solution encrypts back to the ciphertext.
func (c *Chapter) Verify() error {
	t, err := ciphers.Lookup(string(c.Cipher))
	if err != nil {
		return err
	}
	if err := t.ValidateKey(c.Key); err != nil {
		return fmt.Errorf("chapter %d key: %w", c.Number, err)
	}

	plain, err := t.Decrypt(c.Ciphertext, c.Key)
	if err != nil {
		return err
	}
	if !c.Check(plain) {
		return fmt.Errorf("%w: chapter %d decrypts to %q", ErrMismatch, c.Number, plain)
	}

	enc, err := t.Encrypt(c.Solution, c.Key)
	if err != nil {
		return err
	}
	if Normalize(enc) != Normalize(c.Ciphertext) {
		return fmt.Errorf("%w: chapter %d solution encrypts to %q", ErrMismatch, c.Number, enc)
	}
	return nil
}

// Catalog is an ordered set of chapters.
type Catalog struct {
	chapters []Chapter
}

// LoadBuiltin loads the chapters shipped with the binary.
func LoadBuiltin() (*Catalog, error) {
	sub, err := fs.Sub(builtinFS, "chapters")
	if err != nil {
		return nil, err
	}
	return load(sub)
}

// LoadDir loads every .json chapter file in dir.
func LoadDir(dir string) (*Catalog, error) {
	return load(os.DirFS(dir))
}

func load(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read chapters: %w", err)
	}

	cat := &Catalog{}
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read chapter file %s: %w", e.Name(), err)
		}
		ch, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("chapter file %s: %w", e.Name(), err)
		}
		if other, dup := seen[ch.Number]; dup {
			return nil, fmt.Errorf("chapter %d defined in both %s and %s", ch.Number, other, e.Name())
		}
		seen[ch.Number] = e.Name()
		cat.chapters = append(cat.chapters, *ch)
	}

	sort.Slice(cat.chapters, func(i, j int) bool {
		return cat.chapters[i].Number < cat.chapters[j].Number
	})
	for i := 1; i < len(cat.chapters); i++ {
		cat.chapters[i].Requires = cat.chapters[i-1].Number
	}
	return cat, nil
}

// Parse decodes a chapter strictly: unknown fields are an error.
func Parse(data []byte) (*Chapter, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()

	var ch Chapter
	if err := dec.Decode(&ch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chapter: %w", err)
	}
	if ch.Number <= 0 {
		return nil, fmt.Errorf("chapter number must be positive, got %d", ch.Number)
	}
	if _, err := ciphers.Lookup(string(ch.Cipher)); err != nil {
		return nil, err
	}
	return &ch, nil
}

// List returns the chapters in order.
func (c *Catalog) List() []Chapter {
	out := make([]Chapter, len(c.chapters))
	copy(out, c.chapters)
	return out
}

// Get returns chapter n.
func (c *Catalog) Get(n int) (*Chapter, error) {
	for i := range c.chapters {
		if c.chapters[i].Number == n {
			ch := c.chapters[i]
			return &ch, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrChapterNotFound, n)
}

// Next returns the number of the chapter after n, and false if n is the last.
func (c *Catalog) Next(n int) (int, bool) {
	for _, ch := range c.chapters {
		if ch.Number > n {
			return ch.Number, true
		}
	}
	return 0, false
}
