package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/brand-voice/internal/domain/ai"
)

const (
	DefaultModel     = "gpt-4o"
	DefaultMaxTokens = 4096
)

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// SearchModel serves augmented requests; empty disables web search.
	SearchModel string
	MaxTokens   int
}

type Client struct {
	*openai.Client
	Model       string
	SearchModel string
	MaxTokens   int
}

func NewClient(o Options) *Client {
	cfg := openai.DefaultConfig(o.APIKey)
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	return &Client{
		Client:      openai.NewClientWithConfig(cfg),
		Model:       o.Model,
		SearchModel: o.SearchModel,
		MaxTokens:   o.MaxTokens,
	}
}

func (c *Client) Complete(ctx context.Context, req ai.Request) (*ai.Response, error) {
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	if req.WebSearch {
		if c.SearchModel == "" {
			return nil, ai.ErrWebSearchUnsupported
		}
		model = c.SearchModel
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	chat := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		chat.MaxCompletionTokens = maxTokens
	} else {
		chat.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ai.ErrEmptyResponse
	}
	return &ai.Response{Segments: []string{resp.Choices[0].Message.Content}}, nil
}
