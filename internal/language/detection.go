package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

// Code identifies a detected language by its lowercase name, or the unknown
// sentinel.
type Code string

const (
	// CodeUnknown is reported when a line's language cannot be identified.
	CodeUnknown Code = "unknown"

	// reservedMeta is the wire key that holds block metadata; no language may use it.
	reservedMeta = "meta"
)

var lower = cases.Lower(xlanguage.Und)

// NormalizeCode lowercases and trims a raw identifier result. Empty values and
// the reserved "meta" key collapse to CodeUnknown. ISO codes and word forms
// found in the language table are mapped to their reported name.
func NormalizeCode(raw string) Code {
	value := lower.String(strings.TrimSpace(raw))
	if value == "" || value == reservedMeta {
		return CodeUnknown
	}
	if name := Name(value); name != "" {
		return Code(name)
	}
	return Code(value)
}

// String implements fmt.Stringer.
func (c Code) String() string { return string(c) }

// Detection is the result of identifying one line: either a detected code or
// unknown. The zero value is unknown.
type Detection struct {
	code Code
}

// Detected wraps a code as a successful detection. A code that normalizes to
// the unknown sentinel yields Unknown.
func Detected(code Code) Detection {
	normalized := NormalizeCode(string(code))
	if normalized == CodeUnknown {
		return Unknown()
	}
	return Detection{code: normalized}
}

// Unknown is the detection returned when identification is not possible.
func Unknown() Detection {
	return Detection{}
}

// IsUnknown reports whether the detection carries no language.
func (d Detection) IsUnknown() bool {
	return d.code == ""
}

// Code returns the detected code, or CodeUnknown.
func (d Detection) Code() Code {
	if d.code == "" {
		return CodeUnknown
	}
	return d.code
}

// Identifier maps a non-empty line of text to a language. Implementations must
// be safe for concurrent use, must not block on I/O, and must never panic;
// failures resolve to Unknown.
type Identifier interface {
	Identify(text string) Detection
}

// IdentifierFunc adapts a function to the Identifier interface.
type IdentifierFunc func(text string) Detection

// Identify calls f(text).
func (f IdentifierFunc) Identify(text string) Detection {
	return f(text)
}
