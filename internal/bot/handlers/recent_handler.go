package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const recentArchiveLimit = 20

// NewRecentHandler returns a handler for the admin-only /recent command,
// which lists the most recently archived messages for the current chat.
func NewRecentHandler(deps HandlerDeps) bot.HandlerFunc {
	return recentHandler{deps}.Handle
}

type recentHandler struct {
	deps HandlerDeps
}

func (h recentHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "recent")
	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Recent handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID

	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	defer cancel()
	msgs, err := h.deps.Store.GetRecentMessagesInChat(dbCtx, chatID, recentArchiveLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load archived messages", "error", err, "chat_id", chatID)
		_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.GeneralError,
		})
		if sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	text := h.deps.Config.Messages.ArchiveEmpty
	if len(msgs) > 0 {
		var bld strings.Builder
		fmt.Fprintf(&bld, "🗂 %d پیام اخیر:", len(msgs))
		for _, m := range msgs {
			fmt.Fprintf(&bld, "\n[%s] %s: %s", m.Timestamp.Format("2006-01-02 15:04"), m.Role, m.Content)
		}
		text = bld.String()
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send archive listing", "error", err, "chat_id", chatID)
	}
}
