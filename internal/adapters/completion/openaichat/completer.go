package openaichat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/discord-autochat/internal/ports"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultModel = "gpt-4o-mini"

// Completer calls any endpoint speaking the OpenAI chat completions API.
type Completer struct {
	client openai.Client
	model  string
}

var _ ports.Completer = (*Completer)(nil)

func New(apiKey, model, baseURL string) (*Completer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is empty")
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

	return &Completer{client: openai.NewClient(opts...), model: model}, nil
}

func (c *Completer) Complete(ctx context.Context, prompt string, params ports.GenerationParams) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(params.Temperature),
	}
	if params.MaxOutputTokens > 0 {
		req.MaxTokens = openai.Int(int64(params.MaxOutputTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
