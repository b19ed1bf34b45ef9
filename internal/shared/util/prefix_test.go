package util

import "testing"

func TestValidPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		want   bool
	}{
		{prefix: "2024-05-01/run-abc", want: true},
		{prefix: "batch_1", want: true},
		{prefix: "a/b/c/", want: true},
		{prefix: "", want: false},
		{prefix: "has space", want: false},
		{prefix: "dot.ted", want: false},
		{prefix: "semi;colon", want: false},
		{prefix: "ünicode", want: false},
		{prefix: "line\nbreak", want: false},
		{prefix: "abc\n", want: false},
		{prefix: " abc", want: false},
	}

	for _, tt := range tests {
		if got := ValidPrefix(tt.prefix); got != tt.want {
			t.Fatalf("ValidPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}
