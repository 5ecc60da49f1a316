// Package intent classifies a cleaned utterance as either casual
// conversation or a market-price lookup.
package intent

import (
	"strings"

	"github.com/abouzarnameh/chatbot/internal/text"
)

// Trigger vocabulary for price queries: generic price/rate/now/today terms,
// currency names, coin and gold denominations, and crypto terms, in Persian
// and English. Persian keywords match as substrings since suffixes attach
// directly to the word; ASCII keywords match whole tokens only, so "eth"
// does not fire on "together".
//
// This is a pure membership test. It will false-positive on sentences that
// mention a currency conversationally; that is a known, accepted limitation.
var (
	priceSubstrings = []string{
		"قیمت", "نرخ", "چنده", "چند شد", "تومن", "تومان",
		"دلار", "یورو", "پوند", "درهم", "لیر", "یوان",
		"سکه", "طلا", "مثقال", "هجده عیار", "18 عیار",
		"بیت کوین", "بیتکوین", "اتریوم", "تتر", "ارز دیجیتال", "کریپتو",
	}

	priceTokens = map[string]struct{}{
		"price": {}, "rate": {},
		"dollar": {}, "euro": {}, "pound": {}, "dirham": {}, "lira": {}, "yuan": {},
		"coin": {}, "gold": {},
		"bitcoin": {}, "btc": {}, "eth": {}, "usdt": {}, "crypto": {},
	}
)

// IsPriceQuery reports whether the utterance contains at least one trigger
// keyword after normalization.
func IsPriceQuery(utterance string) bool {
	norm := text.Normalize(utterance)
	if norm == "" {
		return false
	}

	for _, kw := range priceSubstrings {
		if strings.Contains(norm, kw) {
			return true
		}
	}

	for _, tok := range strings.Fields(norm) {
		if _, ok := priceTokens[tok]; ok {
			return true
		}
	}

	return false
}
