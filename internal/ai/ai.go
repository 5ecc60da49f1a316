// Package ai provides the chat-completion client used to answer
// conversational messages, with a factory selecting between an
// OpenAI-compatible HTTP backend and the Gemini SDK backend.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Message roles as used on the completion wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client generates a completion for an ordered list of turns. An empty
// returned string with a nil error means the service produced no answer;
// callers substitute their own fallback text.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// FailureKind tags an upstream completion failure so the boundary layer can
// render it without inspecting error internals.
type FailureKind string

const (
	FailureTimeout   FailureKind = "timeout"
	FailureStatus    FailureKind = "status"
	FailureTransport FailureKind = "transport"
)

// APIError is a non-success response from the completion service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("completion service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion service returned status %d: %s", e.StatusCode, e.Message)
}

// KindOf classifies a completion error for rendering. Deadline expiry maps
// to FailureTimeout, an upstream non-2xx to FailureStatus, and everything
// else to FailureTransport.
func KindOf(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return FailureStatus
	}
	return FailureTransport
}
