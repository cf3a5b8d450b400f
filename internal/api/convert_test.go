package api

import (
	"encoding/json"
	"testing"
	"time"

	"scriptparse/internal/archive"
)

func TestFromRunDetail(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.UTC)
	run := &archive.Run{
		ID:         "abc",
		CreatedAt:  created,
		Source:     archive.SourceFixture,
		LineCount:  4,
		BlockCount: 2,
		Languages:  []string{"farsi", "english"},
		ResultJSON: []byte(`{"script":[],"languages":[]}`),
	}

	detail := FromRunDetail(run)
	if detail.CreatedAt != "2026-03-04T05:06:07.008Z" {
		t.Fatalf("unexpected createdAt: %s", detail.CreatedAt)
	}
	data, err := json.Marshal(detail)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":"abc","createdAt":"2026-03-04T05:06:07.008Z","source":"fixture","lineCount":4,"blockCount":2,"languages":["farsi","english"],"result":{"script":[],"languages":[]}}`
	if string(data) != want {
		t.Fatalf("unexpected detail:\n got %s\nwant %s", data, want)
	}
}

func TestFromRunsEmpty(t *testing.T) {
	data, err := json.Marshal(FromRuns(nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"runs":[]}` {
		t.Fatalf("unexpected list: %s", data)
	}
	if got := FromRun(nil); got.ID != "" {
		t.Fatalf("nil run should convert to zero summary")
	}
}
