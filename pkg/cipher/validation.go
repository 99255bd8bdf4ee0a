package cipher

import (
	"fmt"
	"strings"
)

// Validation is the data form of a key check, suitable for returning to a UI.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidationOf converts the result of a Validate* function into a Validation.
func ValidationOf(err error) Validation {
	if err != nil {
		return Validation{Valid: false, Error: err.Error()}
	}
	return Validation{Valid: true}
}

// ValidateKeyword applies the shared keyword rules: not blank, at least minLen
// letters once whitespace is removed, and letters only.
func ValidateKeyword(keyword string, minLen int) error {
	if strings.TrimSpace(keyword) == "" {
		return ErrEmptyKeyword
	}
	stripped := StripSpace(keyword)
	if len(stripped) < minLen {
		return fmt.Errorf("%w: must be at least %d letters", ErrKeywordTooShort, minLen)
	}
	for _, r := range stripped {
		if !IsLetter(r) {
			return fmt.Errorf("%w: found %q", ErrNonAlphabetic, r)
		}
	}
	return nil
}
