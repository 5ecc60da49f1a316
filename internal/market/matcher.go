package market

import (
	"regexp"
	"sort"
	"strings"

	"github.com/abouzarnameh/chatbot/internal/text"
)

// DefaultLimit is how many instruments a price reply includes at most.
const DefaultLimit = 6

// Scoring constants. Symbol identity dominates; token hits accumulate;
// the cue bonuses break ties between instruments that share tokens
// (e.g. the various dollar quotes, coin sizes, gold carats).
const (
	scoreSymbolExact = 50
	scoreTokenHit    = 10
	scoreCurrencyCue = 8
	scoreCoinCue     = 8
	scoreGoldCue     = 6
)

// stopTokens are price-trigger words that carry no instrument information
// and are stripped from the query before tokenizing.
var stopTokens = map[string]struct{}{
	"قیمت": {}, "نرخ": {}, "چنده": {}, "چند": {}, "چقدر": {}, "شد": {},
	"الان": {}, "امروز": {}, "تومن": {}, "تومان": {},
	"price": {}, "rate": {}, "now": {}, "today": {},
}

// symbolGuessRe finds a plausible ticker symbol in the raw query: a lone
// 3-6 letter ASCII word such as "usd" or "btc".
var symbolGuessRe = regexp.MustCompile(`\b[A-Za-z]{3,6}\b`)

// scoredMatch pairs an instrument with its transient ranking score.
type scoredMatch struct {
	score int
	item  Item
}

// Rank scores every catalog item against the query and returns at most
// limit items in descending score order. Ties keep catalog order (the sort
// is stable). Items scoring zero are dropped; an empty result means the
// caller should fall back to Head(items, limit) so the reply is never
// empty while the catalog has data.
func Rank(items []Item, query string, limit int) []Item {
	if limit <= 0 {
		limit = DefaultLimit
	}

	norm := text.Normalize(query)

	var tokens []string
	for _, tok := range strings.Fields(norm) {
		if _, stop := stopTokens[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	symbolGuess := strings.ToUpper(symbolGuessRe.FindString(query))

	wantsDollar := strings.Contains(norm, "دلار") || hasToken(tokens, "dollar")
	wantsCoin := strings.Contains(norm, "سکه") || hasToken(tokens, "coin")
	wantsGold := strings.Contains(norm, "طلا") || strings.Contains(norm, "عیار") ||
		hasToken(tokens, "gold") || hasToken(tokens, "18k")

	scored := make([]scoredMatch, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.Name + " " + item.NameEn + " " + item.Symbol)

		score := 0
		if symbolGuess != "" && strings.EqualFold(symbolGuess, item.Symbol) {
			score += scoreSymbolExact
		}
		for _, tok := range tokens {
			if strings.Contains(haystack, tok) {
				score += scoreTokenHit
			}
		}

		if wantsDollar && (strings.Contains(strings.ToUpper(item.Symbol), "USD") || strings.Contains(item.Name, "دلار")) {
			score += scoreCurrencyCue
		}
		if wantsCoin && (strings.Contains(item.Name, "سکه") || strings.Contains(haystack, "coin")) {
			score += scoreCoinCue
		}
		if wantsGold && (strings.Contains(item.Name, "طلا") || strings.Contains(haystack, "gold") || strings.Contains(haystack, "18")) {
			score += scoreGoldCue
		}

		if score > 0 {
			scored = append(scored, scoredMatch{score: score, item: item})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]Item, len(scored))
	for i, m := range scored {
		out[i] = m.item
	}
	return out
}

// Head returns the first limit catalog items in their original order. It is
// the deterministic fallback when no item scores above zero.
func Head(items []Item, limit int) []Item {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func hasToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}
