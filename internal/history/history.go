// Package history keeps a bounded, per-user conversation buffer used to
// build completion requests. Buffers live in memory only; a process restart
// starts every conversation fresh.
package history

import "sync"

// Roles attributed to conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message exchanged in a conversation. Turns are immutable once
// appended.
type Turn struct {
	Role    string
	Content string
}

// Store holds per-user conversation buffers keyed by user identifier.
// Each buffer is capped at 2×maxTurns entries (maxTurns exchanges); when the
// cap is reached the oldest entries are evicted first. Buffers are created
// lazily on first append and live for the process lifetime.
//
// Store is safe for concurrent use. Each Append/Snapshot/Clear is atomic
// with respect to its buffer; overlapping messages from the same user get
// last-write-wins ordering, which is accepted behavior.
type Store struct {
	mu       sync.Mutex
	maxTurns int
	buffers  map[int64][]Turn
}

// NewStore creates a store whose buffers hold at most maxTurns exchanges
// (2×maxTurns turns) per user.
func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &Store{
		maxTurns: maxTurns,
		buffers:  make(map[int64][]Turn),
	}
}

// Append adds turns to the tail of the user's buffer, evicting from the
// head so that at most 2×maxTurns entries remain.
func (s *Store) Append(userID int64, turns ...Turn) {
	if len(turns) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf := append(s.buffers[userID], turns...)
	if limit := 2 * s.maxTurns; len(buf) > limit {
		buf = buf[len(buf)-limit:]
	}
	s.buffers[userID] = buf
}

// Snapshot returns a copy of the user's buffer in insertion order. The
// returned slice is owned by the caller.
func (s *Store) Snapshot(userID int64) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := s.buffers[userID]
	out := make([]Turn, len(buf))
	copy(out, buf)
	return out
}

// Clear empties the buffer for one user. Other users are unaffected.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buffers, userID)
}

// ClearAll drops every buffer.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buffers = make(map[int64][]Turn)
}
