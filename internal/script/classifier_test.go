package script

import (
	"testing"

	"scriptparse/internal/language"
)

func TestIsMetaLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"TITLE", true},
		{"INT. HOUSE - NIGHT", true},
		{"A", true},
		{"ABC then lowercase", true},
		{"12A rest", true},
		{"ABC “QUOTED”", true},
		{"ABC “quoted”", false},
		{"Hello there", false},
		{"ABc def", false},
		{"Ab", false},
		{"123", false},
		{"...", false},
		{"سلام", false},
		{"ǅX", false},
		{"Ⅻ", true},
		{"ⒶⒷⒸ", true},
		{"ⅫI. Hello", true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := IsMetaLine(tt.line, DefaultExcludedQuotes); got != tt.want {
				t.Fatalf("IsMetaLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsMetaLineExcludedQuotesConfigurable(t *testing.T) {
	line := "ABC “quoted” and «other»"
	if IsMetaLine(line, DefaultExcludedQuotes) {
		t.Fatal("default quotes should block the prefix rule")
	}
	if !IsMetaLine(line, nil) {
		t.Fatal("no excluded quotes should let the prefix rule through")
	}
	if IsMetaLine("ABC «other»", []string{"«"}) {
		t.Fatal("configured quote should block the prefix rule")
	}
}

func TestClassifierConsultsIdentifierOnlyForContent(t *testing.T) {
	calls := 0
	id := language.IdentifierFunc(func(text string) language.Detection {
		calls++
		return language.Detected("en")
	})
	c := NewClassifier(id, nil)

	if got := c.Classify("TITLE"); !got.IsMeta() {
		t.Fatalf("expected meta, got %+v", got)
	}
	if calls != 0 {
		t.Fatalf("identifier called for meta line")
	}
	got := c.Classify("Hello there")
	if got.IsMeta() || got.Code != "english" {
		t.Fatalf("expected english content, got %+v", got)
	}
	if calls != 1 {
		t.Fatalf("expected one identifier call, got %d", calls)
	}
}

func TestClassifierUnknownDetection(t *testing.T) {
	c := NewClassifier(language.IdentifierFunc(func(string) language.Detection {
		return language.Unknown()
	}), nil)
	if got := c.Classify("hmm"); got.Kind != KindContent || got.Code != language.CodeUnknown {
		t.Fatalf("expected unknown content, got %+v", got)
	}

	nilID := NewClassifier(nil, nil)
	if got := nilID.Classify("hmm"); got.Code != language.CodeUnknown {
		t.Fatalf("nil identifier should yield unknown, got %+v", got)
	}
}

func TestNewClassifierCopiesQuotes(t *testing.T) {
	quotes := []string{"«"}
	c := NewClassifier(nil, quotes)
	quotes[0] = "»"
	if got := c.Classify("ABC «x»"); got.IsMeta() {
		t.Fatalf("classifier should keep its own copy of the quote list")
	}
}

func TestKindString(t *testing.T) {
	if KindMeta.String() != "meta" || KindContent.String() != "content" {
		t.Fatalf("unexpected kind strings: %s %s", KindMeta, KindContent)
	}
}
