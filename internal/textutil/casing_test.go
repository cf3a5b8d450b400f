package textutil

import "testing"

func TestIsUpper(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"TITLE", true},
		{"SCENE ONE", true},
		{"INT. HOUSE - DAY", true},
		{"ПРИВЕТ", true},
		{"Title", false},
		{"title", false},
		{"123", false},
		{"", false},
		{"سلام", false},
		{"A1", true},
		{"Ǆ", true},
		{"ǅ", false},  // titlecase digraph
		{"Aª", false}, // ordinal indicator is Other_Lowercase
		// Roman numerals and circled letters carry Other_Uppercase or
		// Other_Lowercase rather than Lu/Ll.
		{"Ⅻ", true},
		{"ⒶⒷⒸ", true},
		{"ⅻ", false},
		{"Ⓐⓑ", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsUpper(tt.input); got != tt.want {
				t.Fatalf("IsUpper(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"Hello", 3, "Hel"},
		{"Hi", 3, "Hi"},
		{"", 3, ""},
		{"سلام دنیا", 3, "سلا"},
		{"ÄÖÜß", 3, "ÄÖÜ"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Prefix(tt.input, tt.n); got != tt.want {
			t.Errorf("Prefix(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("JOHN: “Hello”", []string{"“"}) {
		t.Fatal("expected curly quote match")
	}
	if ContainsAny(`JOHN: "Hello"`, []string{"“"}) {
		t.Fatal("straight quotes should not match")
	}
	if ContainsAny("anything", []string{""}) {
		t.Fatal("empty needle must be ignored")
	}
}
