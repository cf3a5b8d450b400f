package textutil

import (
	"strings"
	"unicode"
)

// IsUpper reports whether s contains at least one cased character and no
// lowercase or titlecase character. Uppercase includes Other_Uppercase
// (Roman numerals, circled letters). Uncased runes (digits, punctuation,
// letters of caseless scripts) are ignored.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case isLowercase(r) || unicode.IsTitle(r):
			return false
		case isUppercase(r):
			cased = true
		}
	}
	return cased
}

// isUppercase covers the Unicode Uppercase property: category Lu plus
// Other_Uppercase.
func isUppercase(r rune) bool {
	return unicode.IsUpper(r) || unicode.Is(unicode.Other_Uppercase, r)
}

// isLowercase covers the Unicode Lowercase property, which adds
// Other_Lowercase (ordinal indicators, modifier letters) to category Ll.
func isLowercase(r rune) bool {
	return unicode.IsLower(r) || unicode.Is(unicode.Other_Lowercase, r)
}

// Prefix returns the first n runes of s, or s when it is shorter.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// ContainsAny reports whether s contains any of the given substrings. Empty
// needles are ignored.
func ContainsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
