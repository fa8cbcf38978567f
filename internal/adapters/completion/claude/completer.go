package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bnema/discord-autochat/internal/ports"
)

const DefaultModel = "claude-3-5-haiku-latest"

type Completer struct {
	client anthropic.Client
	model  string
}

var _ ports.Completer = (*Completer)(nil)

func New(apiKey, model, baseURL string) (*Completer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("anthropic api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Completer{client: anthropic.NewClient(opts...), model: model}, nil
}

func (c *Completer) Complete(ctx context.Context, prompt string, params ports.GenerationParams) (string, error) {
	maxTokens := int64(params.MaxOutputTokens)
	if maxTokens <= 0 {
		// The messages API requires max_tokens.
		maxTokens = 256
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(params.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	return sb.String(), nil
}
