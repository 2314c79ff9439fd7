// Package llm wraps the OpenAI-compatible text-completion capability.
// Failures are not returned as errors: Complete yields a sentinel-prefixed
// string instead, and callers apply their own fallback (reuse the digest,
// or a static apology). That keeps the pipeline total: a dead model can
// never abort a request.
package llm

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"airops/app/config"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

// FailurePrefix marks a completion that did not happen. It mirrors the
// warning marker the frontends already recognize.
const FailurePrefix = "⚠️"

const (
	maxCompletionDuration = 30 * time.Second
	classifyMaxTokens     = 1000
	answerMaxTokens       = 2000
)

func IsFailure(text string) bool {
	return text == "" || strings.HasPrefix(text, FailurePrefix)
}

// Completer is the completion contract of one configured model.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
	Enabled() bool
}

type Client struct {
	api       *openai.Client
	model     string
	enabled   bool
	jsonMode  bool
	maxTokens int
}

var _ Completer = (*Client)(nil)

// Clients groups the two configured models: a strict-JSON one for intent
// classification and a free-text one for final answer phrasing.
type Clients struct {
	Classify *Client
	Answer   *Client
}

func New(di *do.Injector) (*Clients, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Clients{
		Classify: newClient(cfg.OpenAI.Classify, true, classifyMaxTokens),
		Answer:   newClient(cfg.OpenAI.Answer, false, answerMaxTokens),
	}, nil
}

func newClient(cfg config.ModelConfig, jsonMode bool, maxTokens int) *Client {
	clientConfig := openai.DefaultConfig(cfg.Token)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: maxCompletionDuration,
	}

	return &Client{
		api:       openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		enabled:   cfg.Enabled(),
		jsonMode:  jsonMode,
		maxTokens: maxTokens,
	}
}

func (c *Client) Enabled() bool {
	return c.enabled
}

func (c *Client) Complete(ctx context.Context, prompt string) string {
	if !c.enabled {
		return FailurePrefix + " completion capability is not configured"
	}

	ctx, cancel := context.WithTimeout(ctx, maxCompletionDuration)
	defer cancel()

	request := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxCompletionTokens: c.maxTokens,
	}
	if c.jsonMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	response, err := c.api.CreateChatCompletion(ctx, request)
	if err != nil {
		slog.Error("completion request failed", "model", c.model, "error", err)
		return FailurePrefix + " completion request failed"
	}

	if len(response.Choices) == 0 {
		slog.Error("completion returned no choices", "model", c.model)
		return FailurePrefix + " completion returned no choices"
	}

	return strings.TrimSpace(response.Choices[0].Message.Content)
}
