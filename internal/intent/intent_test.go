package intent_test

import (
	"testing"

	"github.com/abouzarnameh/chatbot/internal/intent"
)

func TestIsPriceQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		utterance string
		expected  bool
	}{
		{
			name:      "gold price in Persian",
			utterance: "قیمت طلا چنده",
			expected:  true,
		},
		{
			name:      "plain greeting",
			utterance: "سلام خوبی؟",
			expected:  false,
		},
		{
			name:      "dollar by name",
			utterance: "دلار الان چنده",
			expected:  true,
		},
		{
			name:      "coin denomination",
			utterance: "سکه امامی چند شد",
			expected:  true,
		},
		{
			name:      "bitcoin english token",
			utterance: "what is btc at",
			expected:  true,
		},
		{
			name:      "eth does not fire inside other words",
			utterance: "we should get together sometime",
			expected:  false,
		},
		{
			name:      "rate does not fire inside other words",
			utterance: "your answers are accurate and separate",
			expected:  false,
		},
		{
			name:      "zero-width characters do not hide keywords",
			utterance: "قی‌مت دلار",
			expected:  true,
		},
		{
			name:      "empty utterance",
			utterance: "",
			expected:  false,
		},
		{
			name:      "conversational currency mention still fires (known limitation)",
			utterance: "من دلار رو به یورو ترجیح میدم، نظر تو چیه؟",
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := intent.IsPriceQuery(tt.utterance)
			if got != tt.expected {
				t.Errorf("IsPriceQuery(%q) = %v, want %v", tt.utterance, got, tt.expected)
			}
		})
	}
}
