package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/config"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatProvider is one raw completion call against a single model.
type ChatProvider interface {
	Complete(ctx context.Context, model string, messages []ChatMessage) (string, error)
}

type openAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider builds the production provider. A non-empty base
// URL points it at any OpenAI-compatible endpoint.
func NewOpenAIProvider(cfg config.Config) ChatProvider {
	cc := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		cc.BaseURL = cfg.OpenAIBaseURL
	}
	return &openAIProvider{client: openai.NewClientWithConfig(cc)}
}

func (p *openAIProvider) Complete(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.4,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// AIGateway turns a role-tagged message list into a single completion.
// It owns context-window truncation and the model fallback chain; it
// performs no persistence.
type AIGateway struct {
	provider   ChatProvider
	models     []string // preferred first, then fallbacks in order
	maxTurns   int
	maxChars   int
	retryDelay time.Duration
	timeout    time.Duration
	log        zerolog.Logger
}

func NewAIGateway(cfg config.Config, provider ChatProvider, log zerolog.Logger) *AIGateway {
	g := &AIGateway{
		provider:   provider,
		models:     append([]string{cfg.AIModel}, cfg.AIFallbackModels...),
		maxTurns:   cfg.AIMaxTurns,
		maxChars:   cfg.AIMaxChars,
		retryDelay: cfg.AIRetryDelay,
		timeout:    cfg.AIRequestTimeout,
		log:        log,
	}
	if g.maxTurns <= 0 {
		g.maxTurns = 12
	}
	if g.maxChars <= 0 {
		g.maxChars = 8000
	}
	if g.retryDelay <= 0 {
		g.retryDelay = 500 * time.Millisecond
	}
	if g.timeout <= 0 {
		g.timeout = 30 * time.Second
	}
	return g
}

// truncateHistory keeps the most recent turns that fit both budgets.
// Walks newest to oldest so the same input always yields the same window.
func (g *AIGateway) truncateHistory(turns []ChatMessage) []ChatMessage {
	kept := 0
	chars := 0
	for i := len(turns) - 1; i >= 0; i-- {
		if kept == g.maxTurns || chars+len(turns[i].Content) > g.maxChars {
			break
		}
		chars += len(turns[i].Content)
		kept++
	}
	return turns[len(turns)-kept:]
}

// Generate sends the (at most one) system message plus the truncated
// turn history to the preferred model, falling back through the
// configured chain with a linearly increasing delay. An empty reply
// counts as a failure; exhausting every model returns
// ErrProviderUnavailable wrapping the last cause.
func (g *AIGateway) Generate(ctx context.Context, messages []ChatMessage) (string, error) {
	var window []ChatMessage
	var turns []ChatMessage
	for _, m := range messages {
		if m.Role == RoleSystem && len(window) == 0 {
			window = append(window, m)
			continue
		}
		turns = append(turns, m)
	}
	window = append(window, g.truncateHistory(turns)...)

	var lastErr error
	for attempt, model := range g.models {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, ctx.Err())
			case <-time.After(time.Duration(attempt) * g.retryDelay):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		reply, err := g.provider.Complete(callCtx, model, window)
		cancel()

		if err != nil {
			lastErr = err
			g.log.Warn().Err(err).Str("model", model).Msg("completion attempt failed")
			continue
		}
		if strings.TrimSpace(reply) == "" {
			lastErr = fmt.Errorf("model %s returned an empty reply", model)
			g.log.Warn().Str("model", model).Msg("empty completion")
			continue
		}
		return reply, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
}
