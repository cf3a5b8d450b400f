package language

import (
	"fmt"
	"strings"
	"unicode"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// asciiShareThreshold is the percentage of ASCII letters above which an
// otherwise unhinted Latin line is attributed to the Latin default.
const asciiShareThreshold = 80

// ScriptOptions configures the fallbacks of a ScriptIdentifier. Values are
// BCP 47 tags ("en", "fa-IR") or language words ("english").
type ScriptOptions struct {
	// LatinDefault is reported for mostly-ASCII Latin text without diacritic hints.
	LatinDefault string
	// ArabicScriptDefault is reported for Arabic-script text with no letters
	// that single out Persian or Arabic.
	ArabicScriptDefault string
}

// ScriptIdentifier identifies languages from the Unicode scripts of a line's
// letters. It performs no I/O and is safe for concurrent use.
type ScriptIdentifier struct {
	latinDefault  Code
	arabicDefault Code
}

// NewScriptIdentifier validates the options and builds an identifier.
func NewScriptIdentifier(opts ScriptOptions) (*ScriptIdentifier, error) {
	latin, err := ResolveTag(defaultString(opts.LatinDefault, "en"))
	if err != nil {
		return nil, fmt.Errorf("latin default: %w", err)
	}
	arabic, err := ResolveTag(defaultString(opts.ArabicScriptDefault, "fa"))
	if err != nil {
		return nil, fmt.Errorf("arabic script default: %w", err)
	}
	return &ScriptIdentifier{latinDefault: latin, arabicDefault: arabic}, nil
}

// ResolveTag maps a BCP 47 tag or a language word onto a known Code.
func ResolveTag(value string) (Code, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("empty language tag")
	}
	if name := Name(trimmed); name != "" {
		return Code(name), nil
	}
	tag, err := xlanguage.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse language tag %q: %w", trimmed, err)
	}
	base, _ := tag.Base()
	if name := Name(base.String()); name != "" {
		return Code(name), nil
	}
	return "", fmt.Errorf("unsupported language %q", trimmed)
}

type scriptCounts struct {
	letters int

	latin, ascii                                        int
	german, french, spanish, polish, portuguese         int
	arabic, persianOnly, arabicOnly                     int
	cyrillic, ukrainianOnly                             int
	hebrew, greek, thai, georgian, armenian, devanagari int
	hangul, han, kana                                   int
}

// Identify implements Identifier.
func (s *ScriptIdentifier) Identify(text string) Detection {
	counts := countScripts(norm.NFC.String(text))
	if counts.letters == 0 {
		return Unknown()
	}

	type candidate struct {
		name  string
		count int
	}
	// Specific scripts first so ties never fall to Latin.
	candidates := []candidate{
		{"kana", counts.kana},
		{"hangul", counts.hangul},
		{"han", counts.han},
		{"arabic", counts.arabic},
		{"hebrew", counts.hebrew},
		{"thai", counts.thai},
		{"greek", counts.greek},
		{"cyrillic", counts.cyrillic},
		{"georgian", counts.georgian},
		{"armenian", counts.armenian},
		{"devanagari", counts.devanagari},
		{"latin", counts.latin},
	}
	var best candidate
	for _, c := range candidates {
		if c.count > best.count {
			best = c
		}
	}

	switch best.name {
	case "kana":
		return Detected("ja")
	case "han":
		if counts.kana > 0 {
			return Detected("ja")
		}
		return Detected("zh")
	case "hangul":
		return Detected("ko")
	case "arabic":
		switch {
		case counts.persianOnly > 0:
			return Detected("fa")
		case counts.arabicOnly > 0:
			return Detected("ar")
		default:
			return Detected(s.arabicDefault)
		}
	case "hebrew":
		return Detected("he")
	case "thai":
		return Detected("th")
	case "greek":
		return Detected("el")
	case "cyrillic":
		if counts.ukrainianOnly > 0 {
			return Detected("uk")
		}
		return Detected("ru")
	case "georgian":
		return Detected("ka")
	case "armenian":
		return Detected("hy")
	case "devanagari":
		return Detected("hi")
	case "latin":
		return s.identifyLatin(counts)
	}
	return Unknown()
}

func (s *ScriptIdentifier) identifyLatin(c scriptCounts) Detection {
	hints := []struct {
		code  Code
		count int
	}{
		{"de", c.german},
		{"fr", c.french},
		{"es", c.spanish},
		{"pl", c.polish},
		{"pt", c.portuguese},
	}
	bestIdx, bestCount, tied := -1, 0, false
	for i, h := range hints {
		switch {
		case h.count > bestCount:
			bestIdx, bestCount, tied = i, h.count, false
		case h.count == bestCount && h.count > 0:
			tied = true
		}
	}
	if bestIdx >= 0 && !tied {
		return Detected(hints[bestIdx].code)
	}
	if c.ascii*100/c.letters > asciiShareThreshold {
		return Detected(s.latinDefault)
	}
	return Unknown()
}

func countScripts(text string) scriptCounts {
	var c scriptCounts
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		c.letters++
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			c.kana++
		case unicode.In(r, unicode.Hangul):
			c.hangul++
		case unicode.In(r, unicode.Han):
			c.han++
		case unicode.In(r, unicode.Arabic):
			c.arabic++
			switch r {
			case 'پ', 'چ', 'ژ', 'گ', 'ک', 'ی':
				c.persianOnly++
			case 'ة', 'ى', 'ي', 'ك':
				c.arabicOnly++
			}
		case unicode.In(r, unicode.Hebrew):
			c.hebrew++
		case unicode.In(r, unicode.Thai):
			c.thai++
		case unicode.In(r, unicode.Greek):
			c.greek++
		case unicode.In(r, unicode.Cyrillic):
			c.cyrillic++
			switch unicode.ToLower(r) {
			case 'і', 'ї', 'є', 'ґ':
				c.ukrainianOnly++
			}
		case unicode.In(r, unicode.Georgian):
			c.georgian++
		case unicode.In(r, unicode.Armenian):
			c.armenian++
		case unicode.In(r, unicode.Devanagari):
			c.devanagari++
		case unicode.In(r, unicode.Latin):
			c.latin++
			if r <= unicode.MaxASCII {
				c.ascii++
				continue
			}
			switch unicode.ToLower(r) {
			case 'ä', 'ö', 'ü', 'ß':
				c.german++
			case 'è', 'ê', 'à', 'ù', 'ç', 'œ':
				c.french++
			case 'á', 'í', 'ó', 'ú', 'ñ':
				c.spanish++
			case 'ł', 'ą', 'ę', 'ś', 'ż', 'ź', 'ć', 'ń':
				c.polish++
			case 'ã', 'õ':
				c.portuguese++
			}
		}
	}
	return c
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
