package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const metaKey = "meta"

// Block is the flat wire form of a script block.
type Block struct {
	Meta []string
	// Languages lists the keys of Text in encoding order.
	Languages []string
	Text      map[string]string
}

// MarshalJSON writes "meta" first, then each language in order.
func (b Block) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	meta := b.Meta
	if meta == nil {
		meta = []string{}
	}
	buf.WriteString(`{"meta":`)
	if err := writeValue(&buf, meta); err != nil {
		return nil, err
	}
	for _, lang := range b.Languages {
		if lang == metaKey {
			return nil, fmt.Errorf("language key %q collides with metadata", lang)
		}
		text, ok := b.Text[lang]
		if !ok {
			continue
		}
		buf.WriteByte(',')
		if err := writeValue(&buf, lang); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeValue(&buf, text); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat block object, keeping key order.
func (b *Block) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("block must be a JSON object")
	}

	out := Block{Meta: []string{}, Text: map[string]string{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if key == metaKey {
			if err := dec.Decode(&out.Meta); err != nil {
				return fmt.Errorf("decode meta: %w", err)
			}
			if out.Meta == nil {
				out.Meta = []string{}
			}
			continue
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("decode text for %q: %w", key, err)
		}
		if _, seen := out.Text[key]; !seen {
			out.Languages = append(out.Languages, key)
		}
		out.Text[key] = text
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*b = out
	return nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}
