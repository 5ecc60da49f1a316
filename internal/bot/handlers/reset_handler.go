package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const resetAllTimeout = 30 * time.Second

// NewResetHandler returns a handler for the /reset command, which clears the
// calling user's in-memory conversation buffer.
func NewResetHandler(deps HandlerDeps) bot.HandlerFunc {
	return resetHandler{deps}.Handle
}

type resetHandler struct {
	deps HandlerDeps
}

func (h resetHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "reset")
	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Reset handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.deps.History.Clear(userID)
	log.InfoContext(ctx, "Cleared conversation history", "user_id", userID, "chat_id", chatID)

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.deps.Config.Messages.HistoryReset,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reset confirmation", "error", err, "chat_id", chatID)
	}
}

// NewResetAllHandler returns a handler for the admin-only /reset_all command,
// which clears every conversation buffer and empties the message archive.
func NewResetAllHandler(deps HandlerDeps) bot.HandlerFunc {
	return resetAllHandler{deps}.Handle
}

type resetAllHandler struct {
	deps HandlerDeps
}

func (h resetAllHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "reset_all")
	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Reset-all handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Admin requested full reset", "chat_id", chatID, "user_id", update.Message.From.ID)

	h.deps.History.ClearAll()

	timeoutCtx, cancel := context.WithTimeout(ctx, resetAllTimeout)
	defer cancel()

	if err := h.deps.Store.DeleteAllMessages(timeoutCtx); err != nil {
		log.ErrorContext(ctx, "Failed to empty message archive", "error", err, "chat_id", chatID)
		_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.GeneralError,
		})
		if sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.deps.Config.Messages.ResetAllDone,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reset-all confirmation", "error", err, "chat_id", chatID)
	}
}
