package string

import (
	"strings"
	"unicode"
)

// TrimSpacePtr trims *s in place; nil is left alone.
func TrimSpacePtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// NilIfEmpty returns nil for the empty string and a pointer to s otherwise.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToSnakeCase converts CamelCase identifiers to snake_case.
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
