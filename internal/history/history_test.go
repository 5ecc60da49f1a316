package history_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/abouzarnameh/chatbot/internal/history"
)

func TestStore_AppendAndSnapshot(t *testing.T) {
	t.Parallel()

	s := history.NewStore(10)
	s.Append(1,
		history.Turn{Role: history.RoleUser, Content: "hi"},
		history.Turn{Role: history.RoleAssistant, Content: "hello"},
	)

	got := s.Snapshot(1)
	if len(got) != 2 {
		t.Fatalf("Snapshot() returned %d turns, want 2", len(got))
	}
	if got[0].Role != history.RoleUser || got[0].Content != "hi" {
		t.Errorf("first turn = %+v, want user/hi", got[0])
	}
	if got[1].Role != history.RoleAssistant || got[1].Content != "hello" {
		t.Errorf("second turn = %+v, want assistant/hello", got[1])
	}
}

func TestStore_CapEvictsOldest(t *testing.T) {
	t.Parallel()

	const maxTurns = 3 // cap of 6 entries
	s := history.NewStore(maxTurns)

	for i := 0; i < 20; i++ {
		s.Append(42,
			history.Turn{Role: history.RoleUser, Content: fmt.Sprintf("q%d", i)},
			history.Turn{Role: history.RoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
		if got := len(s.Snapshot(42)); got > 2*maxTurns {
			t.Fatalf("buffer length %d exceeds cap %d after append %d", got, 2*maxTurns, i)
		}
	}

	got := s.Snapshot(42)
	if len(got) != 2*maxTurns {
		t.Fatalf("Snapshot() returned %d turns, want %d", len(got), 2*maxTurns)
	}
	// Most recent exchanges retained, in order.
	want := []string{"q17", "a17", "q18", "a18", "q19", "a19"}
	for i, w := range want {
		if got[i].Content != w {
			t.Errorf("turn %d = %q, want %q", i, got[i].Content, w)
		}
	}
}

func TestStore_ClearIsPerUser(t *testing.T) {
	t.Parallel()

	s := history.NewStore(10)
	s.Append(1, history.Turn{Role: history.RoleUser, Content: "from one"})
	s.Append(2, history.Turn{Role: history.RoleUser, Content: "from two"})

	s.Clear(1)

	if got := s.Snapshot(1); len(got) != 0 {
		t.Errorf("user 1 buffer not empty after Clear: %d turns", len(got))
	}
	if got := s.Snapshot(2); len(got) != 1 || got[0].Content != "from two" {
		t.Errorf("user 2 buffer affected by Clear of user 1: %+v", got)
	}
}

func TestStore_ClearAll(t *testing.T) {
	t.Parallel()

	s := history.NewStore(10)
	s.Append(1, history.Turn{Role: history.RoleUser, Content: "x"})
	s.Append(2, history.Turn{Role: history.RoleUser, Content: "y"})

	s.ClearAll()

	if len(s.Snapshot(1)) != 0 || len(s.Snapshot(2)) != 0 {
		t.Error("buffers not empty after ClearAll")
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	s := history.NewStore(10)
	s.Append(1, history.Turn{Role: history.RoleUser, Content: "original"})

	snap := s.Snapshot(1)
	snap[0].Content = "mutated"

	if got := s.Snapshot(1); got[0].Content != "original" {
		t.Errorf("mutating a snapshot changed the store: %q", got[0].Content)
	}
}

func TestStore_ConcurrentAppendKeepsInvariant(t *testing.T) {
	t.Parallel()

	const maxTurns = 5
	s := history.NewStore(maxTurns)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Append(7,
					history.Turn{Role: history.RoleUser, Content: "q"},
					history.Turn{Role: history.RoleAssistant, Content: "a"},
				)
			}
		}()
	}
	wg.Wait()

	if got := len(s.Snapshot(7)); got != 2*maxTurns {
		t.Errorf("buffer length %d after concurrent appends, want %d", got, 2*maxTurns)
	}
}
