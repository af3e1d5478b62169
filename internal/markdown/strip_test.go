package markdown

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "just a sentence", "just a sentence"},
		{"heading", "## Pointers\nBody", "Pointers\nBody"},
		{"bold", "this is **important** stuff", "this is important stuff"},
		{"italic", "an *emphasized* word", "an emphasized word"},
		{"inline code", "use `std::move` here", "use std::move here"},
		{"link", "see [the docs](https://example.com) now", "see the docs now"},
		{"image", "![diagram](pic.png)", "diagram"},
		{"blockquote", "> quoted line", "quoted line"},
		{"list markers", "- first\n- second", "first\nsecond"},
		{"code fence", "```cpp\nint x = 0;\n```", "int x = 0;"},
		{"trims result", "  **bold**  ", "bold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip(tt.input); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
