package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"obsidian-club/internal/config"
	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
)

// Client talks to the hosted OpenAI-compatible chat-completions API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	temperature float64
	maxTokens   int
	logger      *logger.Logger
}

func NewClient(cfg config.LLMConfig, httpClient *http.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      log,
	}
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends one conversation to the given model and returns the raw
// reply text. Failures are classified into the policy's sentinel errors so
// the invoker knows whether to retry, back off or advance.
func (c *Client) Complete(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	payload := completionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("LLM", fmt.Sprintf("Requesting completion from model %s", model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport-level failures read as unavailability.
		return "", fmt.Errorf("%w: %v", ErrOverloaded, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Error("LLM", fmt.Sprintf("Failed to close completion response body: %v", err))
		}
	}(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrModelNotFound, model)
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable:
		return "", fmt.Errorf("%w: status %d", ErrOverloaded, resp.StatusCode)
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if completion.Error != nil {
		if completion.Error.Code == "model_not_found" || completion.Error.Code == "model_decommissioned" {
			return "", fmt.Errorf("%w: %s", ErrModelNotFound, completion.Error.Message)
		}
		return "", fmt.Errorf("completion API error: %s", completion.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status: %d", resp.StatusCode)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion API returned no choices")
	}

	c.logger.LogLLM(model, "Completion received")
	return completion.Choices[0].Message.Content, nil
}
