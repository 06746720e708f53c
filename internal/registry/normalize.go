package registry

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/osse101/ContestBot_Go/internal/domain"
)

// normalize trims surrounding whitespace and converts to NFC so visually equal
// identifiers from different clients compare equal
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeID normalizes a required identifier and enforces its length limit
func normalizeID(field, raw string, maxLen int) (string, error) {
	id := normalize(raw)
	if id == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(id) > maxLen {
		return "", fmt.Errorf("%w: %s exceeds %d characters", domain.ErrInvalidInput, field, maxLen)
	}
	return id, nil
}

// normalizeName normalizes an optional display name
func normalizeName(field, raw string, maxLen int) (string, error) {
	name := normalize(raw)
	if utf8.RuneCountInString(name) > maxLen {
		return "", fmt.Errorf("%w: %s exceeds %d characters", domain.ErrInvalidInput, field, maxLen)
	}
	return name, nil
}
