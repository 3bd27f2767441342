package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bryanwahyu/brand-voice/internal/domain/ai"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 4096
)

type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	// MaxTokens caps the output size of every call.
	MaxTokens int64
	// WebSearchMaxUses limits searches per augmented call; 0 leaves it to the service.
	WebSearchMaxUses int64
}

// Client talks to the Anthropic Messages API.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	maxUses   int64
}

func NewClient(o Options) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(o.APIKey),
		// fallback between strategies is the only retry
		option.WithMaxRetries(0),
	}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	model := o.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := o.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Client{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
		maxUses:   o.WebSearchMaxUses,
	}
}

func (c *Client) Complete(ctx context.Context, req ai.Request) (*ai.Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.WebSearch {
		tool := anthropic.WebSearchTool20250305Param{}
		if c.maxUses > 0 {
			tool.MaxUses = anthropic.Int(c.maxUses)
		}
		params.Tools = []anthropic.ToolUnionParam{{OfWebSearchTool20250305: &tool}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	resp := &ai.Response{}
	for _, block := range msg.Content {
		if b, ok := block.AsAny().(anthropic.TextBlock); ok && b.Text != "" {
			resp.Segments = append(resp.Segments, b.Text)
		}
	}
	return resp, nil
}
