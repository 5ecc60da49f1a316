// Package text provides text normalization utilities used for comparing
// user input against configured phrases. Persian keyboards routinely emit
// zero-width and directional formatting characters, so every comparison in
// the bot goes through Normalize first.
package text

import "strings"

// invisibleReplacer strips code points that render as nothing but defeat
// string comparison: zero-width non-joiner, left-to-right and right-to-left
// marks, and the byte-order mark.
var invisibleReplacer = strings.NewReplacer(
	"‌", "", // zero-width non-joiner
	"‎", "", // left-to-right mark
	"‏", "", // right-to-left mark
	"\uFEFF", "", // byte-order mark
)

// Normalize canonicalizes text for comparison: invisible formatting
// characters are removed, the result is lower-cased, and runs of whitespace
// collapse to a single space with no leading or trailing whitespace.
// Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = invisibleReplacer.Replace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// Compact returns s with every space removed. It is used for the "compact"
// form of prefix matching, where users omit the space inside a multi-word
// call-name. Callers are expected to pass already-normalized text.
func Compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
