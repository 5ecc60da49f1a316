// Package tasks implements the bot's scheduled background tasks: the
// market catalog refresh and periodic database maintenance.
package tasks

import (
	"log/slog"

	"github.com/abouzarnameh/chatbot/internal/config"
	"github.com/abouzarnameh/chatbot/internal/database"
	"github.com/abouzarnameh/chatbot/internal/market"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger       *slog.Logger
	Store        database.Store
	MarketClient *market.Client
	MarketCache  *market.Cache
	Config       *config.Config
}
