package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// UK postcode regex
var rePostcode = regexp.MustCompile(`(?i)\b([A-Z]{1,2}\d[\dA-Z]?)\s*(\d[ABD-HJLNP-UW-Z]{2})\b`)

// reOutward matches a bare outward code such as "CF14" or "SA1".
var reOutward = regexp.MustCompile(`^[A-Z]{1,2}\d[\dA-Z]?$`)

// Postcode puts a postcode into "OUTWARD INWARD" form, upper-cased.
// Input that does not look like a full postcode is returned upper-cased
// and trimmed so partial entries like "CF14" still work as a prefix.
func Postcode(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if m := rePostcode.FindStringSubmatch(s); m != nil {
		return m[1] + " " + m[2]
	}
	return strings.Join(strings.Fields(s), " ")
}

// IsPostcode reports whether raw contains a full UK postcode.
func IsPostcode(raw string) bool {
	return rePostcode.MatchString(strings.TrimSpace(raw))
}

// ExtractPostcode returns the first full postcode found in free text.
func ExtractPostcode(text string) string {
	if m := rePostcode.FindStringSubmatch(strings.ToUpper(text)); m != nil {
		return m[1] + " " + m[2]
	}
	return ""
}

// StripPostcode removes the first full postcode from text, keeping the
// case of the words around it.
func StripPostcode(text string) string {
	loc := rePostcode.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text)
	}
	return strings.Join(strings.Fields(text[:loc[0]]+" "+text[loc[1]:]), " ")
}

// OutwardCode returns the district part of a postcode ("CF14 1AB" -> "CF14").
// The inward code is always three characters, so a postcode typed without
// its space still splits correctly. Bare outward codes pass through.
func OutwardCode(raw string) string {
	compact := strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw))
	if reOutward.MatchString(compact) {
		return compact
	}
	if len(compact) < 5 {
		return compact
	}
	return compact[:len(compact)-3]
}

// Prefix returns the first n characters of the raw, upper-cased postcode.
func Prefix(raw string, n int) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) <= n {
		return s
	}
	return s[:n]
}
