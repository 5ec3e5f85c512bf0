package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeOrderInput trims whitespace and a single leading '#'.
func NormalizeOrderInput(order string) string {
	order = strings.TrimSpace(order)
	order = strings.TrimPrefix(order, "#")
	return strings.TrimSpace(order)
}

// NormalizeEmail trims and lowercases an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidOrderInput reports whether a normalised order number is safe to embed
// in a search expression: letters, digits, '-', '_' and '.'.
func ValidOrderInput(order string) bool {
	if order == "" {
		return false
	}
	for _, r := range order {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// ValidEmail rejects whitespace and search-syntax characters, which would
// otherwise extend the predicate built around it.
func ValidEmail(email string) bool {
	return !strings.ContainsFunc(email, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`()"'\:*<>`, r)
	})
}

// BuildSearchQuery renders the upstream search expression. Order names are
// stored both with and without the '#' prefix, so both are tried. Inputs must
// have passed ValidOrderInput and ValidEmail.
func BuildSearchQuery(order, email string) string {
	q := fmt.Sprintf("(name:#%s OR name:%s)", order, order)
	if email != "" {
		q += " AND email:" + email
	}
	return q
}
