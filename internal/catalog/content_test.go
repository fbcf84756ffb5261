package catalog

import "testing"

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "A simple synopsis.", "A simple synopsis."},
		{"paragraph tags", "<p>First.</p><p>Second.</p>", "First.Second."},
		{"nested markup", "<div><p>Hello <b>world</b></p></div>", "Hello world"},
		{"entities decoded", "Tom &amp; Jerry &ndash; classic", "Tom & Jerry – classic"},
		{"whitespace collapsed", "line one\n\n   line two\t ", "line one line two"},
		{"line breaks", "one<br>two<br/>three", "onetwothree"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanDescription(tt.input); got != tt.want {
				t.Errorf("CleanDescription(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
