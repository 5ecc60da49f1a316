package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store is the data access interface for the message archive. All methods
// accept a context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveMessage inserts an archive record and fills in its generated ID.
	SaveMessage(ctx context.Context, message *Message) error

	// GetRecentMessagesInChat retrieves the most recent limit messages for
	// a chat, oldest first.
	GetRecentMessagesInChat(ctx context.Context, chatID int64, limit int) ([]Message, error)

	// DeleteAllMessages empties the archive.
	DeleteAllMessages(ctx context.Context) error

	// RunSQLMaintenance reclaims space and refreshes planner statistics.
	RunSQLMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewStore creates a Store backed by the given sqlx connection.
func NewStore(db *sqlx.DB, log *slog.Logger) Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:  db,
		log: log.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.ChatID == 0 || message.UserID == 0 {
		return fmt.Errorf("message must have non-zero chat_id and user_id")
	}
	if message.Content == "" {
		return fmt.Errorf("message must have non-empty content")
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	message.CreatedAt = time.Now().UTC()

	const query = `
        INSERT INTO messages (created_at, chat_id, user_id, role, content, timestamp)
        VALUES (:created_at, :chat_id, :user_id, :role, :content, :timestamp);
    `
	result, err := s.db.NamedExecContext(ctx, query, message)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to save message", "chat_id", message.ChatID, "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to save message (chat %d, user %d): %w", message.ChatID, message.UserID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		message.ID = uint(id)
	} else {
		s.log.WarnContext(ctx, "Could not retrieve last insert ID", "chat_id", message.ChatID, "error", err)
	}

	return nil
}

func (s *sqlxStore) GetRecentMessagesInChat(ctx context.Context, chatID int64, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
        SELECT id, created_at, chat_id, user_id, role, content, timestamp
        FROM messages
        WHERE chat_id = ?
        ORDER BY timestamp DESC, id DESC
        LIMIT ?;
    `
	var messages []Message
	if err := s.db.SelectContext(ctx, &messages, query, chatID, limit); err != nil {
		return nil, fmt.Errorf("failed to query recent messages for chat %d: %w", chatID, err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *sqlxStore) DeleteAllMessages(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages;`); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	s.log.InfoContext(ctx, "Deleted all archived messages")
	return nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	for _, stmt := range []string{`VACUUM;`, `ANALYZE;`} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("maintenance statement %q failed: %w", stmt, err)
		}
	}
	return nil
}
