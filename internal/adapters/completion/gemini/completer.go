package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/discord-autochat/internal/ports"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var errNoText = errors.New("no text in response")

type Completer struct {
	client *genai.Client
	model  string
}

var _ ports.Completer = (*Completer)(nil)

// New builds a Gemini API completer. baseURL is only set for tests and
// proxies; empty uses the public endpoint.
func New(ctx context.Context, apiKey, model, baseURL string) (*Completer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Completer{client: client, model: model}, nil
}

func (c *Completer) Complete(ctx context.Context, prompt string, params ports.GenerationParams) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(params.Temperature)),
	}
	if params.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(params.MaxOutputTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", errNoText
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errNoText
	}

	return sb.String(), nil
}
