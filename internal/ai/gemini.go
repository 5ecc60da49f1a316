package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/abouzarnameh/chatbot/internal/config"
)

// geminiClient implements Client on top of the Gemini SDK. System turns map
// to the system instruction; assistant turns map to the model role.
type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	log         *slog.Logger
}

func newGeminiClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (*geminiClient, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Token,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiClient{
		client:      gi,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		log:         log.With("component", "gemini_client"),
	}, nil
}

func (c *geminiClient) Complete(ctx context.Context, messages []Message) (string, error) {
	temp := c.temperature
	genCfg := &genai.GenerateContentConfig{Temperature: &temp}

	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			genCfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: m.Content}}}
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini completion failed", "error", err)
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		c.log.WarnContext(ctx, "Gemini response contained no candidates")
		return "", nil
	}

	return strings.TrimSpace(resp.Text()), nil
}
