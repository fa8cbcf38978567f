package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
)

const replyPromptTemplate = "Put yourself in the shoes of a regular member of this chat. " +
	"Adapt your response to the context of the conversation. " +
	"Keep it interesting, friendly, relevant and short. " +
	"Respond to this message: %s"

var fallbackReplies = []string{
	"That's interesting!",
	"I see what you mean.",
	"Thanks for sharing!",
	"Cool!",
	"Interesting perspective!",
}

// DefaultCompletionTimeout bounds one completion request so a stalled
// provider cannot hold up the scheduler.
const DefaultCompletionTimeout = 20 * time.Second

var errEmptyCompletion = errors.New("completion returned no text")

// FallbackReplies returns the canned replies used when generation fails.
func FallbackReplies() []string {
	return slices.Clone(fallbackReplies)
}

func ReplyPrompt(source string) string {
	return fmt.Sprintf(replyPromptTemplate, source)
}

type Reply struct {
	Text     string
	Fallback bool
}

// ReplyGenerator produces reply text. A nil completer means AI replies are
// disabled and every reply is a fallback.
type ReplyGenerator struct {
	completer ports.Completer
	params    ports.GenerationParams
	rng       *rand.Rand
	logger    *slog.Logger
	timeout   time.Duration
}

func NewReplyGenerator(completer ports.Completer, params ports.GenerationParams, rng *rand.Rand, logger *slog.Logger) *ReplyGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReplyGenerator{
		completer: completer,
		params:    params,
		rng:       rng,
		logger:    logger,
		timeout:   DefaultCompletionTimeout,
	}
}

// WithTimeout replaces the per-request completion deadline. Non-positive
// values keep the current one.
func (g *ReplyGenerator) WithTimeout(timeout time.Duration) *ReplyGenerator {
	if timeout > 0 {
		g.timeout = timeout
	}
	return g
}

// GenerateReply never fails; an AI outage must not block channel processing.
func (g *ReplyGenerator) GenerateReply(ctx context.Context, source string) string {
	return g.Generate(ctx, source).Text
}

func (g *ReplyGenerator) Generate(ctx context.Context, source string) Reply {
	if g.completer == nil {
		return g.fallback()
	}

	completeCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.completer.Complete(completeCtx, ReplyPrompt(source), g.params)
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errEmptyCompletion
		}
	}
	if err != nil {
		g.logger.Warn("ai reply failed, using fallback", "error", domain.AIError("generate reply", err))
		return g.fallback()
	}

	return Reply{Text: text}
}

func (g *ReplyGenerator) fallback() Reply {
	return Reply{
		Text:     fallbackReplies[g.rng.IntN(len(fallbackReplies))],
		Fallback: true,
	}
}
