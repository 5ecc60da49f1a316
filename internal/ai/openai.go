package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/abouzarnameh/chatbot/internal/config"
)

// openAIClient talks to an OpenAI-compatible chat-completions endpoint via
// direct HTTP calls.
type openAIClient struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	model       string
	temperature float32
	log         *slog.Logger
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

func newOpenAIClient(cfg config.AIConfig, log *slog.Logger) (*openAIClient, error) {
	if cfg.Token == "" {
		return nil, errors.New("completion API token is required")
	}
	return &openAIClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		token:       cfg.Token,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		log:         log.With("component", "openai_client"),
	}, nil
}

// Complete sends the turns to the chat-completions endpoint and returns the
// first choice's content, trimmed. A missing or empty choice yields an
// empty string with no error.
func (c *openAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	reqBody, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	var body chatCompletionResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil && body.Error != nil {
			apiErr.Message = body.Error.Message
		}
		return "", apiErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", decodeErr)
	}

	if len(body.Choices) == 0 {
		c.log.WarnContext(ctx, "Completion response contained no choices", "model", body.Model)
		return "", nil
	}

	return strings.TrimSpace(body.Choices[0].Message.Content), nil
}
