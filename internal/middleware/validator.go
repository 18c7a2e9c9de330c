package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/earnings-analyst/internal/domain/queries"
)

// MaxQueryLength bounds a query in runes.
const MaxQueryLength = 1000

// ValidateQuery sanitizes a query and rejects empty or oversized text.
func ValidateQuery(q string) (string, error) {
	q = SanitizeString(q)
	if q == "" {
		return "", fmt.Errorf("query cannot be empty")
	}
	if n := utf8.RuneCountInString(q); n > MaxQueryLength {
		return "", fmt.Errorf("query is too long (%d characters, max %d)", n, MaxQueryLength)
	}
	return q, nil
}

// ValidateCommandName resolves a canonical command name.
func ValidateCommandName(name string) (queries.Command, error) {
	c, ok := queries.ParseCommand(strings.TrimSpace(name))
	if !ok {
		return 0, fmt.Errorf("unknown command: %q", name)
	}
	return c, nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ToValidUTF8(input, "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 && r != 127 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
