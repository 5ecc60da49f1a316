package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewPromptHandler returns a handler for the /prompt command, which shows the
// system instruction currently in effect.
func NewPromptHandler(deps HandlerDeps) bot.HandlerFunc {
	return promptHandler{deps}.Handle
}

type promptHandler struct {
	deps HandlerDeps
}

func (h promptHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "prompt")
	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Prompt handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf(h.deps.Config.Messages.PromptCurrent, h.deps.Prompt.Get()),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send current prompt", "error", err, "chat_id", chatID)
	}
}

// NewSetPromptHandler returns a handler for the admin-only /setprompt command.
// The new instruction applies for the lifetime of the process only.
func NewSetPromptHandler(deps HandlerDeps) bot.HandlerFunc {
	return setPromptHandler{deps}.Handle
}

type setPromptHandler struct {
	deps HandlerDeps
}

func (h setPromptHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "setprompt")
	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Setprompt handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID

	// Strip the leading "/setprompt" (possibly "/setprompt@botname").
	text := update.Message.Text
	if i := strings.IndexFunc(text, func(r rune) bool { return r == ' ' || r == '\n' }); i >= 0 {
		text = strings.TrimSpace(text[i+1:])
	} else {
		text = ""
	}

	if text == "" {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   h.deps.Config.Messages.PromptUsage,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send setprompt usage", "error", err, "chat_id", chatID)
		}
		return
	}

	h.deps.Prompt.Set(text)
	log.InfoContext(ctx, "System instruction replaced", "chat_id", chatID, "user_id", update.Message.From.ID, "length", len(text))

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.deps.Config.Messages.PromptSet,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send setprompt confirmation", "error", err, "chat_id", chatID)
	}
}
