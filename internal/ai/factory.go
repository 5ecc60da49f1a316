package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abouzarnameh/chatbot/internal/config"
)

// NewClient creates a completion client for the configured backend.
func NewClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if log == nil {
		log = slog.Default()
	}
	log.Info("Initializing completion client", "backend", cfg.Backend, "model", cfg.Model)

	switch cfg.Backend {
	case "openai":
		return newOpenAIClient(cfg, log)
	case "gemini":
		return newGeminiClient(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown completion backend: %s", cfg.Backend)
	}
}
