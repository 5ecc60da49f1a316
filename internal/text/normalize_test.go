package text_test

import (
	"testing"

	"github.com/abouzarnameh/chatbot/internal/text"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "simple text",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "upper case folded",
			input:    "HONEY Bear",
			expected: "honey bear",
		},
		{
			name:     "leading and trailing whitespace trimmed",
			input:    "  hello  ",
			expected: "hello",
		},
		{
			name:     "internal whitespace collapsed",
			input:    "hello \t  world\n now",
			expected: "hello world now",
		},
		{
			name:     "zero-width non-joiner removed",
			input:    "می‌خواهم",
			expected: "میخواهم",
		},
		{
			name:     "directional marks removed",
			input:    "‏قیمت دلار‎",
			expected: "قیمت دلار",
		},
		{
			name:     "byte-order mark removed",
			input:    "\uFEFFسلام",
			expected: "سلام",
		},
		{
			name:     "whitespace only",
			input:    " \t\n ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := text.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"hello world",
		"  HONEY   BEAR  hello ",
		"قیمت‌ دلار ‏ الان",
		"\uFEFF mixed ‎ Text \t here",
	}

	for _, in := range inputs {
		once := text.Normalize(in)
		twice := text.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCompact(t *testing.T) {
	t.Parallel()

	if got := text.Compact("honey bear says hi"); got != "honeybearsayshi" {
		t.Errorf("Compact() = %q, want %q", got, "honeybearsayshi")
	}
	if got := text.Compact("nospace"); got != "nospace" {
		t.Errorf("Compact() = %q, want %q", got, "nospace")
	}
}
