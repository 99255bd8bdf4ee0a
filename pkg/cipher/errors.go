package cipher

import "errors"

var (
	// ErrEmptyKeyword is returned when a keyword is blank or whitespace only.
	ErrEmptyKeyword = errors.New("keyword cannot be empty")

	// ErrKeywordTooShort is returned when a keyword has fewer letters than the cipher needs.
	ErrKeywordTooShort = errors.New("keyword is too short")

	// ErrNonAlphabetic is returned when a keyword contains anything other than A-Z or a-z.
	ErrNonAlphabetic = errors.New("keyword must contain only letters")

	// ErrTooFewRails is returned when a rail count is below the minimum.
	ErrTooFewRails = errors.New("too few rails")

	// ErrTooManyRails is returned when a rail count is above the maximum.
	ErrTooManyRails = errors.New("too many rails")

	// ErrInvalidKey is returned when a key cannot be parsed for the selected cipher,
	// e.g. a non-numeric Caesar shift.
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnknownCipher is returned when a cipher ID is not registered.
	ErrUnknownCipher = errors.New("unknown cipher")
)
