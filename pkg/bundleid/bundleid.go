package bundleid

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmpty = errors.New("empty bundle id")

type InvalidCharacterError struct {
	Index int
	Char  rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q at index %d in bundle id", e.Char, e.Index)
}

// Parse validates a bundle identifier and returns it lower-cased. Only ASCII
// letters, digits, '-' and '.' are allowed, and bundle ids compare
// case-insensitively.
func Parse(s string) (string, error) {
	if s == "" {
		return "", ErrEmpty
	}

	for i, c := range s {
		if !valid(c) {
			return "", &InvalidCharacterError{Index: i, Char: c}
		}
	}

	return strings.ToLower(s), nil
}

func valid(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '.':
		return true
	}
	return false
}
