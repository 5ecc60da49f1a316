package database_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/abouzarnameh/chatbot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStore_Ping(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestStore_SaveMessageFillsID(t *testing.T) {
	s := newTestStore(t)

	msg := &database.Message{ChatID: 1, UserID: 2, Role: "user", Content: "سلام"}
	if err := s.SaveMessage(context.Background(), msg); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if msg.ID == 0 {
		t.Error("SaveMessage did not fill the generated ID")
	}
	if msg.Timestamp.IsZero() {
		t.Error("SaveMessage did not default the timestamp")
	}
}

func TestStore_SaveMessageValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveMessage(ctx, nil); err == nil {
		t.Error("expected error for nil message")
	}
	if err := s.SaveMessage(ctx, &database.Message{UserID: 2, Role: "user", Content: "x"}); err == nil {
		t.Error("expected error for zero chat_id")
	}
	if err := s.SaveMessage(ctx, &database.Message{ChatID: 1, UserID: 2, Role: "user"}); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestStore_GetRecentMessagesInChat(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"first", "second", "third"} {
		msg := &database.Message{
			ChatID:    10,
			UserID:    2,
			Role:      "user",
			Content:   content,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("SaveMessage(%q): %v", content, err)
		}
	}
	// A message in another chat must not leak into the result.
	other := &database.Message{ChatID: 11, UserID: 2, Role: "user", Content: "elsewhere", Timestamp: base}
	if err := s.SaveMessage(ctx, other); err != nil {
		t.Fatalf("SaveMessage(other chat): %v", err)
	}

	got, err := s.GetRecentMessagesInChat(ctx, 10, 2)
	if err != nil {
		t.Fatalf("GetRecentMessagesInChat: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Content != "second" || got[1].Content != "third" {
		t.Errorf("messages = [%s, %s], want newest two in chronological order", got[0].Content, got[1].Content)
	}
}

func TestStore_DeleteAllMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	msg := &database.Message{ChatID: 1, UserID: 2, Role: "user", Content: "bye"}
	if err := s.SaveMessage(ctx, msg); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if err := s.DeleteAllMessages(ctx); err != nil {
		t.Fatalf("DeleteAllMessages: %v", err)
	}

	got, err := s.GetRecentMessagesInChat(ctx, 1, 10)
	if err != nil {
		t.Fatalf("GetRecentMessagesInChat: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d messages after delete, want 0", len(got))
	}
}
