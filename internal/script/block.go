package script

import (
	"slices"

	"scriptparse/internal/language"
)

// Block is one logical segment: its metadata lines and the text merged per
// language. Metadata and text live in separate fields, so no language code
// can collide with the metadata key.
type Block struct {
	Meta []string
	Text map[language.Code]string

	// order records each language's first appearance in the block.
	order []language.Code
}

func newBlock() *Block {
	return &Block{Meta: []string{}, Text: map[language.Code]string{}}
}

// AppendMeta adds a metadata line, preserving insertion order.
func (b *Block) AppendMeta(line string) {
	b.Meta = append(b.Meta, line)
}

// Merge appends line to the text held for code, separated by a single space.
// It reports whether this is the first text seen for code in the block.
func (b *Block) Merge(code language.Code, line string) bool {
	if existing, ok := b.Text[code]; ok {
		b.Text[code] = existing + " " + line
		return false
	}
	b.Text[code] = line
	b.order = append(b.order, code)
	return true
}

// Languages lists the block's languages in order of first appearance. Codes
// set directly on Text without Merge follow in sorted order.
func (b Block) Languages() []language.Code {
	out := make([]language.Code, 0, len(b.Text))
	for _, code := range b.order {
		if _, ok := b.Text[code]; ok {
			out = append(out, code)
		}
	}
	if len(out) == len(b.Text) {
		return out
	}
	var extra []language.Code
	for code := range b.Text {
		if !slices.Contains(out, code) {
			extra = append(extra, code)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// IsEmpty reports whether the block holds neither metadata nor text.
func (b Block) IsEmpty() bool {
	return len(b.Meta) == 0 && len(b.Text) == 0
}
