package ports

import "context"

type GenerationParams struct {
	MaxOutputTokens int
	Temperature     float64
}

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string, params GenerationParams) (string, error)
}
