package language

import "testing"

func newTestIdentifier(t *testing.T, opts ScriptOptions) *ScriptIdentifier {
	t.Helper()
	id, err := NewScriptIdentifier(opts)
	if err != nil {
		t.Fatalf("NewScriptIdentifier: %v", err)
	}
	return id
}

func TestScriptIdentifierIdentify(t *testing.T) {
	id := newTestIdentifier(t, ScriptOptions{})

	tests := []struct {
		name string
		text string
		want Code
	}{
		{"english sentence", "Hello there friend", "english"},
		{"short english", "Hi there", "english"},
		{"farsi without persian-only letters", "سلام", "farsi"},
		{"farsi with persian letters", "من پدر هستم", "farsi"},
		{"arabic with ta marbuta", "مدرسة جميلة", "arabic"},
		{"hebrew", "שלום עולם", "hebrew"},
		{"greek", "Καλημέρα", "greek"},
		{"russian", "Привет, мир", "russian"},
		{"ukrainian", "Привіт, світе", "ukrainian"},
		{"japanese", "こんにちは世界", "japanese"},
		{"chinese", "你好世界", "chinese"},
		{"korean", "안녕하세요", "korean"},
		{"german", "Schöne Grüße", "german"},
		{"french", "Ça va très bien", "french"},
		{"spanish", "¿Qué tal, señor?", "spanish"},
		{"decomposed umlaut", "Gru\u0308\u00dfe", "german"},
		{"digits only", "12345", CodeUnknown},
		{"punctuation only", "...!?", CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := id.Identify(tt.text).Code(); got != tt.want {
				t.Fatalf("Identify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestScriptIdentifierDefaults(t *testing.T) {
	id := newTestIdentifier(t, ScriptOptions{LatinDefault: "nl", ArabicScriptDefault: "ar"})

	if got := id.Identify("Hello there").Code(); got != "dutch" {
		t.Fatalf("expected configured latin default, got %q", got)
	}
	if got := id.Identify("سلام").Code(); got != "arabic" {
		t.Fatalf("expected configured arabic default, got %q", got)
	}
}

func TestNewScriptIdentifierRejectsUnknownDefaults(t *testing.T) {
	if _, err := NewScriptIdentifier(ScriptOptions{LatinDefault: "zz-invalid-!"}); err == nil {
		t.Fatal("expected error for invalid latin default")
	}
	if _, err := NewScriptIdentifier(ScriptOptions{ArabicScriptDefault: "sw"}); err == nil {
		t.Fatal("expected error for unsupported arabic default")
	}
}

func TestIdentifierFunc(t *testing.T) {
	var id Identifier = IdentifierFunc(func(string) Detection { return Detected("fr") })
	if got := id.Identify("anything").Code(); got != "french" {
		t.Fatalf("IdentifierFunc returned %q", got)
	}
}
