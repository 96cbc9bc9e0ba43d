// Package llm implements the chat-completions transport against any
// OpenAI-compatible provider.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"docagent/internal/domain"
)

// ErrTransport tags any failure of the remote model call: network errors,
// timeouts, non-2xx responses, and empty completions.
var ErrTransport = errors.New("model call failed")

// Config configures the chat client.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client is a blocking chat client. Each call is one request/response
// exchange bounded by the configured timeout.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewClient creates a client for an OpenAI-compatible endpoint.
func NewClient(cfg Config) *Client {
	oaiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oaiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	oaiCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		client:      openai.NewClientWithConfig(oaiCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Chat sends the messages and returns the assistant's reply text.
func (c *Client) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: c.temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrTransport)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
