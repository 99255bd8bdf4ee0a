package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/cipher-engine/pkg/chapter"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <chapter.json>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &ChapterValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("Chapter files are valid!")
}

type ChapterValidator struct {
	errors []string
}

func (v *ChapterValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("chapter file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidChapterFilename(nameWithoutExt) {
		return fmt.Errorf("chapter filename '%s' must be lowercase snake_case (e.g., chapter1_amulet.json, not Chapter1-Amulet.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	ch, err := chapter.Parse(data)
	if err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.errors = nil
	v.validateChapter(ch)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *ChapterValidator) validateChapter(ch *chapter.Chapter) {
	if strings.TrimSpace(ch.Title) == "" {
		v.addError("title is required")
	}
	if chapter.Normalize(ch.Solution) == "" {
		v.addError("solution must contain letters")
	}
	if chapter.Normalize(ch.Ciphertext) == "" {
		v.addError("ciphertext must contain letters")
	}
	if len(ch.Hints) == 0 {
		v.addError("at least one hint is required")
	}

	t, err := ciphers.Lookup(string(ch.Cipher))
	if err != nil {
		v.addError(err.Error())
		return
	}
	if err := t.ValidateKey(ch.Key); err != nil {
		v.addError(fmt.Sprintf("key %q is not valid for %s: %v", ch.Key, t.Name(), err))
		return
	}

	if err := ch.Verify(); err != nil {
		v.addError(err.Error())
	}
}

func (v *ChapterValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidChapterFilename(name string) bool {
	// Allow 'x.' prefix for draft chapters
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
