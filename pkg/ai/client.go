// Package ai provides the chat-completion backend used to generate reviews.
// The upstream endpoint is OpenAI-compatible, so the client is a thin layer
// over go-openai with a custom base URL, retry with exponential backoff, and
// model switching for fallback scenarios.
package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultMaxRetries  = 3
	defaultMaxTokens   = 8192
	defaultTemperature = 0.3

	baseRetryDelay = 500 * time.Millisecond
	maxRetryDelay  = 10 * time.Second

	// maxRetryShift bounds the exponential growth; 500ms << 5 already
	// exceeds maxRetryDelay, so larger shifts only risk overflow.
	maxRetryShift = 5
)

// retryableStatusCodes are HTTP statuses worth retrying with backoff.
var retryableStatusCodes = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
}

// retryableKeywords classify transport-level failures that surface as plain
// errors rather than API errors.
var retryableKeywords = []string{
	"timeout", "connection", "temporarily", "overloaded", "rate limit",
}

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatOptions tunes a single chat call. Zero values fall back to defaults.
type ChatOptions struct {
	MaxTokens   int
	Temperature float32
	Retries     int
}

// Client is a chat-completion client. Safe for concurrent use except for
// SetModel, which callers should invoke only during fallback selection
// before concurrent calls begin.
type Client struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates a client for an OpenAI-compatible endpoint. baseURL may
// be empty to use the upstream default.
func NewClient(apiKey, baseURL, model string, logger zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	logger.Info().Str("model", model).Str("base_url", cfg.BaseURL).Msg("initialized chat client")

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}, nil
}

// Model returns the current model name.
func (c *Client) Model() string {
	return c.model
}

// SetModel switches the model, used when a larger-context fallback is
// selected for an oversized diff.
func (c *Client) SetModel(model string) {
	if model != c.model {
		c.logger.Info().Str("from", c.model).Str("to", model).Msg("switching model")
		c.model = model
	}
}

// Chat sends a completion request, retrying retryable failures with
// exponential backoff and jitter.
func (c *Client) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	if opts.Retries <= 0 {
		opts.Retries = defaultMaxRetries
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	var lastErr error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			c.logger.Info().
				Int("prompt_tokens", resp.Usage.PromptTokens).
				Int("completion_tokens", resp.Usage.CompletionTokens).
				Int("total_tokens", resp.Usage.TotalTokens).
				Msg("chat completion succeeded")
			if len(resp.Choices) == 0 {
				return "", errors.New("empty response from model")
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = err
		if attempt >= opts.Retries || !isRetryable(err) {
			break
		}

		delay := retryDelay(attempt)
		c.logger.Warn().Err(err).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("chat completion failed, retrying")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", fmt.Errorf("chat completion failed after %d retries: %w", opts.Retries, lastErr)
}

// isRetryable reports whether err is worth another attempt.
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatusCodes[apiErr.HTTPStatusCode]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, kw := range retryableKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// retryDelay computes the backoff for attempt (0-based): capped exponential
// growth plus up to 50% jitter. The shift is clamped so a caller-supplied
// retry count can never overflow the delay into a negative duration.
func retryDelay(attempt int) time.Duration {
	if attempt > maxRetryShift {
		attempt = maxRetryShift
	}
	delay := baseRetryDelay << attempt
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay + time.Duration(rand.Int63n(int64(delay)/2+1))
}
