package script

import (
	"strings"
	"unicode"

	"scriptparse/internal/language"
)

// Options configures a Parser.
type Options struct {
	// ExcludedQuotes overrides DefaultExcludedQuotes when non-nil.
	ExcludedQuotes []string
}

// Parser is the entry point from the I/O layer: an ordered sequence of raw
// lines in, a Script out.
type Parser struct {
	classifier *Classifier
}

// NewParser builds a parser around identifier.
func NewParser(identifier language.Identifier, opts Options) *Parser {
	return &Parser{classifier: NewClassifier(identifier, opts.ExcludedQuotes)}
}

// Parse trims every line, skips blank ones, and segments the rest. It is pure:
// the same input and a deterministic identifier always produce the same
// Script.
func (p *Parser) Parse(lines []string) Script {
	seg := NewSegmenter()
	for _, raw := range lines {
		line := TrimLine(raw)
		if line == "" {
			continue
		}
		seg.Step(line, p.classifier.Classify(line))
	}
	return seg.Finish()
}

// Parse is a convenience wrapper using the default excluded quotes.
func Parse(lines []string, identifier language.Identifier) Script {
	return NewParser(identifier, Options{}).Parse(lines)
}

// LinesFromValues converts loosely typed input, such as a decoded JSON array,
// to lines. Entries that are not strings, including nulls, are rejected with
// ErrContract before any line is processed.
func LinesFromValues(values []any) ([]string, error) {
	lines := make([]string, len(values))
	for i, value := range values {
		switch v := value.(type) {
		case string:
			lines[i] = v
		case nil:
			return nil, contractError(i, "null value")
		default:
			return nil, contractError(i, "expected string")
		}
	}
	return lines, nil
}

// TrimLine strips leading and trailing whitespace, including the ASCII
// information separators U+001C to U+001F that Unicode-aware splitters treat
// as line whitespace.
func TrimLine(s string) string {
	return strings.TrimFunc(s, isLineSpace)
}

func isLineSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
