// Package address decides whether a group message is directed at the bot
// and recovers the user's actual utterance once the addressing markers are
// stripped. Both decisions share a single prefix-match routine so the gate
// and the cleaner can never disagree about what counts as "addressed".
package address

import (
	"strings"
	"unicode"

	"github.com/abouzarnameh/chatbot/internal/text"
)

// Identity holds the bot's configured call-name and its platform handle.
// It is loaded once at startup and immutable for the process lifetime.
type Identity struct {
	// CallName is the display phrase users type to address the bot,
	// e.g. "سس خرسی".
	CallName string

	// Handle is the bot's @username without the leading "@". May be empty
	// before the bot has identified itself with the platform.
	Handle string
}

// prefixMatch describes how the normalized text matched the call-name.
type prefixMatch int

const (
	matchNone prefixMatch = iota
	matchExact
	matchCompact
)

// matchCallName checks whether normalized text starts with the normalized
// call-name, either verbatim or in compact form (all spaces removed, which
// tolerates users omitting the space inside a multi-word call-name).
func (id Identity) matchCallName(norm string) prefixMatch {
	call := text.Normalize(id.CallName)
	if call == "" {
		return matchNone
	}
	if strings.HasPrefix(norm, call) {
		return matchExact
	}
	if strings.HasPrefix(text.Compact(norm), text.Compact(call)) {
		return matchCompact
	}
	return matchNone
}

// IsAddressed reports whether a message in a group conversation is directed
// at the bot. The checks, in order: call-name prefix (exact or compact),
// @handle mention anywhere in the text, or a direct reply to one of the
// bot's own messages. In one-to-one chats this gate must be bypassed
// entirely; every direct message is implicitly addressed.
func (id Identity) IsAddressed(raw string, replyToBot bool) bool {
	norm := text.Normalize(raw)
	if norm == "" && !replyToBot {
		return false
	}

	if id.matchCallName(norm) != matchNone {
		return true
	}

	if id.Handle != "" && strings.Contains(norm, "@"+text.Normalize(id.Handle)) {
		return true
	}

	return replyToBot
}

// ExtractUtterance strips the addressing markers from a directed message
// and returns the text the user actually meant. An exact call-name prefix
// removes the call-name's rune length from the raw text; a compact-form
// prefix drops everything up to the first whitespace run. Any literal
// @handle occurrence is removed last. An empty result means there is
// nothing to respond to.
func (id Identity) ExtractUtterance(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}

	switch id.matchCallName(text.Normalize(t)) {
	case matchExact:
		runes := []rune(t)
		n := len([]rune(id.CallName))
		if n >= len(runes) {
			t = ""
		} else {
			t = string(runes[n:])
		}
	case matchCompact:
		if idx := strings.IndexFunc(t, unicode.IsSpace); idx >= 0 {
			t = t[idx:]
		} else {
			t = ""
		}
	}
	t = strings.TrimSpace(t)

	if id.Handle != "" {
		t = strings.ReplaceAll(t, "@"+id.Handle, "")
		t = strings.ReplaceAll(t, "@"+strings.ToLower(id.Handle), "")
		t = strings.TrimSpace(t)
	}

	return t
}
