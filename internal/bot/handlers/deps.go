package handlers

import (
	"log/slog"

	"github.com/abouzarnameh/chatbot/internal/ai"
	"github.com/abouzarnameh/chatbot/internal/config"
	"github.com/abouzarnameh/chatbot/internal/database"
	"github.com/abouzarnameh/chatbot/internal/history"
	"github.com/abouzarnameh/chatbot/internal/market"
)

// HandlerDeps provides dependencies for Telegram command and message handlers.
type HandlerDeps struct {
	Logger       *slog.Logger
	Config       *config.Config
	Store        database.Store
	AIClient     ai.Client
	Prompt       *ai.Prompt
	History      *history.Store
	MarketClient *market.Client
	MarketCache  *market.Cache
}
