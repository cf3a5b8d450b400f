package script

import (
	"reflect"
	"testing"

	"scriptparse/internal/language"
)

func TestSegmenterTransitions(t *testing.T) {
	seg := NewSegmenter()
	if seg.State() != CollectingMeta {
		t.Fatalf("initial state = %s", seg.State())
	}

	seg.Step("HEADER", Meta())
	seg.Step("SUBHEADER", Meta())
	if seg.State() != CollectingMeta {
		t.Fatalf("consecutive meta lines must not leave CollectingMeta")
	}

	seg.Step("one", Content("english"))
	seg.Step("two", Content("english"))
	seg.Step("سه", Content("farsi"))
	if seg.State() != CollectingContent {
		t.Fatalf("state after content = %s", seg.State())
	}

	seg.Step("NEXT", Meta())
	if seg.State() != CollectingMeta {
		t.Fatalf("state after flush = %s", seg.State())
	}
	seg.Step("three", Content(language.CodeUnknown))

	got := seg.Finish()
	if len(got.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got.Blocks))
	}

	first := got.Blocks[0]
	if !reflect.DeepEqual(first.Meta, []string{"HEADER", "SUBHEADER"}) {
		t.Fatalf("first meta = %v", first.Meta)
	}
	if first.Text["english"] != "one two" || first.Text["farsi"] != "سه" {
		t.Fatalf("first text = %v", first.Text)
	}
	if !reflect.DeepEqual(first.Languages(), []language.Code{"english", "farsi"}) {
		t.Fatalf("first block languages = %v", first.Languages())
	}

	second := got.Blocks[1]
	if !reflect.DeepEqual(second.Meta, []string{"NEXT"}) || second.Text[language.CodeUnknown] != "three" {
		t.Fatalf("second block = %+v", second)
	}

	want := []language.Code{"english", "farsi", language.CodeUnknown}
	if !reflect.DeepEqual(got.Languages, want) {
		t.Fatalf("languages = %v, want %v", got.Languages, want)
	}
}

func TestSegmenterFinishEmitsEmptyBlock(t *testing.T) {
	got := NewSegmenter().Finish()
	if len(got.Blocks) != 1 || !got.Blocks[0].IsEmpty() {
		t.Fatalf("expected one empty block, got %+v", got.Blocks)
	}
	if got.Languages == nil || len(got.Languages) != 0 {
		t.Fatalf("expected empty non-nil languages, got %#v", got.Languages)
	}
	if got.Blocks[0].Meta == nil || got.Blocks[0].Text == nil {
		t.Fatalf("empty block must carry non-nil collections")
	}
}

func TestSegmenterContentBeforeMeta(t *testing.T) {
	seg := NewSegmenter()
	seg.Step("no header", Content("english"))
	seg.Step("TITLE", Meta())
	got := seg.Finish()

	if len(got.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got.Blocks))
	}
	if len(got.Blocks[0].Meta) != 0 || got.Blocks[0].Text["english"] != "no header" {
		t.Fatalf("first block = %+v", got.Blocks[0])
	}
	if len(got.Blocks[1].Text) != 0 {
		t.Fatalf("trailing meta block should have no text, got %v", got.Blocks[1].Text)
	}
}

func TestStateString(t *testing.T) {
	if CollectingMeta.String() != "collecting_meta" || CollectingContent.String() != "collecting_content" {
		t.Fatalf("unexpected state strings")
	}
	if State(9).String() != "unknown" {
		t.Fatalf("unexpected fallback state string")
	}
}

func TestBlockLanguagesIncludesUnorderedKeys(t *testing.T) {
	b := Block{Text: map[language.Code]string{"zeta": "z", "alpha": "a"}}
	b.Merge("english", "hi")
	want := []language.Code{"english", "alpha", "zeta"}
	if got := b.Languages(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Languages() = %v, want %v", got, want)
	}
}
