package script

import (
	"scriptparse/internal/language"
	"scriptparse/internal/textutil"
)

// metaPrefixRunes is how many leading characters the prefix rule inspects.
const metaPrefixRunes = 3

// DefaultExcludedQuotes lists the characters whose presence stops the prefix
// rule from treating a line as metadata: U+201C LEFT DOUBLE QUOTATION MARK.
var DefaultExcludedQuotes = []string{"“"}

// Kind distinguishes metadata lines from content lines.
type Kind int

const (
	KindMeta Kind = iota
	KindContent
)

func (k Kind) String() string {
	if k == KindMeta {
		return "meta"
	}
	return "content"
}

// Classification is the verdict for a single line. Code is only meaningful
// for content lines.
type Classification struct {
	Kind Kind
	Code language.Code
}

// Meta returns the metadata classification.
func Meta() Classification { return Classification{Kind: KindMeta} }

// Content returns a content classification carrying code.
func Content(code language.Code) Classification {
	return Classification{Kind: KindContent, Code: code}
}

// IsMeta reports whether the line was classified as metadata.
func (c Classification) IsMeta() bool { return c.Kind == KindMeta }

// Classifier decides whether a line is metadata or language-tagged content.
type Classifier struct {
	identifier     language.Identifier
	excludedQuotes []string
}

// NewClassifier builds a classifier. A nil excludedQuotes slice selects
// DefaultExcludedQuotes; an empty non-nil slice disables the quote check.
func NewClassifier(identifier language.Identifier, excludedQuotes []string) *Classifier {
	if excludedQuotes == nil {
		excludedQuotes = DefaultExcludedQuotes
	}
	quotes := make([]string, len(excludedQuotes))
	copy(quotes, excludedQuotes)
	return &Classifier{identifier: identifier, excludedQuotes: quotes}
}

// Classify inspects a trimmed, non-empty line. The identifier is consulted
// only for content lines; a nil identifier tags every content line unknown.
func (c *Classifier) Classify(line string) Classification {
	if IsMetaLine(line, c.excludedQuotes) {
		return Meta()
	}
	if c.identifier == nil {
		return Content(language.CodeUnknown)
	}
	return Content(c.identifier.Identify(line).Code())
}

// IsMetaLine applies the metadata heuristic: the whole line is uppercase, or
// its first three characters are uppercase and it contains none of the
// excluded quotation characters.
func IsMetaLine(line string, excludedQuotes []string) bool {
	if textutil.IsUpper(line) {
		return true
	}
	return textutil.IsUpper(textutil.Prefix(line, metaPrefixRunes)) &&
		!textutil.ContainsAny(line, excludedQuotes)
}
