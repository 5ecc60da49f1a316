package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/abouzarnameh/chatbot/internal/address"
	"github.com/abouzarnameh/chatbot/internal/ai"
	"github.com/abouzarnameh/chatbot/internal/database"
	"github.com/abouzarnameh/chatbot/internal/history"
	"github.com/abouzarnameh/chatbot/internal/intent"
	"github.com/abouzarnameh/chatbot/internal/market"
)

const (
	sendMessageTimeout = 10 * time.Second
	dbSaveTimeout      = 5 * time.Second
)

// NewMessageHandler creates the default handler for plain text messages. It
// gates group messages on the bot being addressed, routes price queries to the
// market catalog, and everything else to the completion service.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "message")

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		log.DebugContext(ctx, "Ignoring update with nil message, nil sender, or empty text", "update_id", update.ID)
		return
	}
	if strings.HasPrefix(msg.Text, "/") {
		// Commands are dispatched by their own handlers.
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID

	identity := address.Identity{
		CallName: deps.Config.Telegram.CallName,
		Handle:   deps.Config.Telegram.BotInfo.Username,
	}

	if msg.Chat.Type == models.ChatTypeGroup || msg.Chat.Type == models.ChatTypeSupergroup {
		replyToBot := msg.ReplyToMessage != nil &&
			msg.ReplyToMessage.From != nil &&
			msg.ReplyToMessage.From.ID == deps.Config.Telegram.BotInfo.ID

		if !identity.IsAddressed(msg.Text, replyToBot) {
			log.DebugContext(ctx, "Group message not addressed to bot, skipping", "chat_id", chatID)
			return
		}
	}

	// Direct chats skip the gate but still get cleaned: users address the
	// bot by call-name there too.
	utterance := strings.TrimSpace(identity.ExtractUtterance(msg.Text))
	if utterance == "" {
		log.DebugContext(ctx, "Empty utterance after cleaning, skipping", "chat_id", chatID)
		return
	}

	_, _ = b.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping})

	var reply string
	if intent.IsPriceQuery(utterance) {
		log.InfoContext(ctx, "Handling price query", "chat_id", chatID, "user_id", userID)
		reply = h.priceReply(ctx, utterance)
	} else {
		log.InfoContext(ctx, "Handling chat message", "chat_id", chatID, "user_id", userID)
		reply = h.chatReply(ctx, userID, utterance)
	}

	// A cancelled task leaves no trace: no reply, no history write, and
	// nothing in the archive.
	if ctx.Err() != nil {
		log.WarnContext(ctx, "Context cancelled before reply, dropping turn", "chat_id", chatID)
		return
	}

	deps.History.Append(userID,
		history.Turn{Role: history.RoleUser, Content: utterance},
		history.Turn{Role: history.RoleAssistant, Content: reply},
	)

	h.archive(ctx, &database.Message{
		ChatID:    chatID,
		UserID:    userID,
		Role:      history.RoleUser,
		Content:   utterance,
		Timestamp: time.Unix(int64(msg.Date), 0).UTC(),
	})

	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()
	_, err := b.SendMessage(sendCtx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            reply,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
		return
	}

	h.archive(ctx, &database.Message{
		ChatID:    chatID,
		UserID:    deps.Config.Telegram.BotInfo.ID,
		Role:      history.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	})
}

// priceReply answers a price query from the cached market catalog, refreshing
// it when stale. Upstream failures degrade to a formatted error string.
func (h messageHandler) priceReply(ctx context.Context, utterance string) string {
	deps := h.deps
	log := deps.Logger.With("handler", "message")

	items, fetchedAt := deps.MarketCache.Snapshot()
	if len(items) == 0 || time.Since(fetchedAt) > deps.Config.Market.CacheTTL {
		fetchCtx, cancel := context.WithTimeout(ctx, deps.Config.Market.Timeout)
		fetched, err := deps.MarketClient.FetchCatalog(fetchCtx)
		cancel()

		switch {
		case err != nil && len(items) == 0:
			log.ErrorContext(ctx, "Market catalog fetch failed", "error", err)
			return fmt.Sprintf(deps.Config.Messages.MarketError, failureText(ai.KindOf(err)))
		case err != nil:
			log.WarnContext(ctx, "Market refetch failed, serving stale snapshot", "error", err, "age", time.Since(fetchedAt))
		case len(fetched) > 0:
			deps.MarketCache.Set(fetched)
			items = fetched
		}
	}

	if len(items) == 0 {
		return deps.Config.Messages.MarketEmpty
	}

	matched := market.Rank(items, utterance, deps.Config.Market.Limit)
	if len(matched) == 0 {
		matched = market.Head(items, deps.Config.Market.Limit)
	}
	return market.FormatReport(deps.Config.Market.Source, matched)
}

// chatReply runs the completion service over the user's conversation history
// plus the new utterance. Failures degrade to a formatted error string.
func (h messageHandler) chatReply(ctx context.Context, userID int64, utterance string) string {
	deps := h.deps
	log := deps.Logger.With("handler", "message")

	turns := deps.History.Snapshot(userID)
	messages := make([]ai.Message, 0, len(turns)+2)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: deps.Prompt.Get()})
	for _, t := range turns {
		role := ai.RoleUser
		if t.Role == history.RoleAssistant {
			role = ai.RoleAssistant
		}
		messages = append(messages, ai.Message{Role: role, Content: t.Content})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: utterance})

	aiCtx, cancel := context.WithTimeout(ctx, deps.Config.AI.Timeout)
	defer cancel()
	text, err := deps.AIClient.Complete(aiCtx, messages)
	if err != nil {
		log.ErrorContext(ctx, "Completion call failed", "error", err, "user_id", userID)
		return fmt.Sprintf(deps.Config.Messages.CompletionError, failureText(ai.KindOf(err)))
	}
	if text == "" {
		log.WarnContext(ctx, "Completion returned no answer", "user_id", userID)
		return deps.Config.Messages.CompletionEmpty
	}
	return text
}

// archive writes a message to the SQLite archive. Archive failures are logged
// and never block the reply path.
func (h messageHandler) archive(ctx context.Context, msg *database.Message) {
	log := h.deps.Logger.With("handler", "message")

	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	defer cancel()
	if err := h.deps.Store.SaveMessage(dbCtx, msg); err != nil {
		log.ErrorContext(ctx, "Failed to archive message", "error", err, "chat_id", msg.ChatID)
	}
}

// failureText renders a failure kind as a short user-visible phrase.
func failureText(kind ai.FailureKind) string {
	switch kind {
	case ai.FailureTimeout:
		return "مهلت پاسخ تمام شد"
	case ai.FailureStatus:
		return "پاسخ نامعتبر از سرویس"
	default:
		return "خطای شبکه"
	}
}
