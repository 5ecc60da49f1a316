package logger

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string untouched",
			input:    "hello",
			maxLen:   50,
			expected: "hello",
		},
		{
			name:     "ascii truncated with ellipsis",
			input:    "abcdefghij",
			maxLen:   8,
			expected: "abcde...",
		},
		{
			name:     "tiny limit collapses to ellipsis",
			input:    "abcdef",
			maxLen:   3,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	persian := strings.Repeat("قیمت دلار ", 20)
	got := truncate(persian, 50)

	if !utf8.ValidString(got) {
		t.Errorf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n > 50 {
		t.Errorf("truncate kept %d runes, want at most 50", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate(%q) = %q, want ellipsis suffix", persian[:20], got)
	}
}
