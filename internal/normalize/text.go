package normalize

import (
	"strings"
	"unicode"
)

// Text upper-cases free text, replaces punctuation with spaces and
// collapses runs of whitespace. Used on county and post-town fields before
// substring rules are applied.
func Text(raw string) string {
	if raw == "" {
		return ""
	}
	b := strings.Builder{}
	for _, r := range strings.ToUpper(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// IsBlank reports whether a field is empty or a placeholder the dataset
// uses for missing values.
func IsBlank(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "N/A", "NA", "NULL", "NONE", "-":
		return true
	}
	return false
}
