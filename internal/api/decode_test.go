package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scriptparse/internal/script"
)

func TestDecodeLines(t *testing.T) {
	lines, err := DecodeLines(strings.NewReader(` ["INT. HOUSE", "  Hello  ", ""] `))
	if err != nil {
		t.Fatalf("DecodeLines: %v", err)
	}
	if len(lines) != 3 || lines[1] != "  Hello  " {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestDecodeLinesContractViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"invalid json", "[\"a\","},
		{"object", `{"lines":["a"]}`},
		{"string", `"a"`},
		{"number entry", `["a", 1]`},
		{"null entry", `["a", null]`},
		{"nested array", `[["a"]]`},
		{"trailing data", `["a"] ["b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLines(strings.NewReader(tt.body))
			if !errors.Is(err, script.ErrContract) {
				t.Fatalf("DecodeLines(%q) error = %v, want ErrContract", tt.body, err)
			}
		})
	}
}

func TestDecodeLinesBodyTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	body := http.MaxBytesReader(rec, io.NopCloser(strings.NewReader(`["`+strings.Repeat("a", 64)+`"]`)), 16)

	_, err := DecodeLines(body)
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected MaxBytesError, got %v", err)
	}
	if errors.Is(err, script.ErrContract) {
		t.Fatal("oversized body must not be reported as a contract violation")
	}
}
