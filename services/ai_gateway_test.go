package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"backend/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatewayCall struct {
	model  string
	window []ChatMessage
}

type fakeProvider struct {
	mu      sync.Mutex
	calls   []gatewayCall
	replies map[string]string // per model; missing model errors
}

func (f *fakeProvider) Complete(_ context.Context, model string, messages []ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	window := make([]ChatMessage, len(messages))
	copy(window, messages)
	f.calls = append(f.calls, gatewayCall{model: model, window: window})

	reply, ok := f.replies[model]
	if !ok {
		return "", errors.New("model offline")
	}
	return reply, nil
}

func gatewayConfig() config.Config {
	return config.Config{
		AIModel:          "primary",
		AIFallbackModels: []string{"fallback-a", "fallback-b"},
		AIMaxTurns:       12,
		AIMaxChars:       8000,
		AIRetryDelay:     time.Millisecond,
		AIRequestTimeout: time.Second,
	}
}

func TestGenerateUsesPreferredModelFirst(t *testing.T) {
	provider := &fakeProvider{replies: map[string]string{"primary": "hello"}}
	gw := NewAIGateway(gatewayConfig(), provider, zerolog.Nop())

	reply, err := gw.Generate(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", reply)
	require.Len(t, provider.calls, 1)
	assert.Equal(t, "primary", provider.calls[0].model)
}

func TestGenerateTriesFallbacksInDeclaredOrder(t *testing.T) {
	provider := &fakeProvider{replies: map[string]string{}} // every model errors
	gw := NewAIGateway(gatewayConfig(), provider, zerolog.Nop())

	_, err := gw.Generate(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}})
	require.ErrorIs(t, err, ErrProviderUnavailable)

	require.Len(t, provider.calls, 3)
	assert.Equal(t, "primary", provider.calls[0].model)
	assert.Equal(t, "fallback-a", provider.calls[1].model)
	assert.Equal(t, "fallback-b", provider.calls[2].model)
}

func TestGenerateTreatsEmptyReplyAsFailure(t *testing.T) {
	provider := &fakeProvider{replies: map[string]string{
		"primary":    "   ",
		"fallback-a": "recovered",
	}}
	gw := NewAIGateway(gatewayConfig(), provider, zerolog.Nop())

	reply, err := gw.Generate(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "recovered", reply)
	assert.Len(t, provider.calls, 2)
}

func TestGenerateKeepsSystemMessageOutsideTheWindow(t *testing.T) {
	provider := &fakeProvider{replies: map[string]string{"primary": "ok"}}
	cfg := gatewayConfig()
	cfg.AIMaxTurns = 2
	gw := NewAIGateway(cfg, provider, zerolog.Nop())

	msgs := []ChatMessage{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
	}
	_, err := gw.Generate(context.Background(), msgs)
	require.NoError(t, err)

	window := provider.calls[0].window
	require.Len(t, window, 3) // system + 2 newest turns
	assert.Equal(t, RoleSystem, window[0].Role)
	assert.Equal(t, "two", window[1].Content)
	assert.Equal(t, "three", window[2].Content)
}

func TestTruncateHistoryRespectsCharBudget(t *testing.T) {
	cfg := gatewayConfig()
	gw := NewAIGateway(cfg, &fakeProvider{}, zerolog.Nop())

	turn := ChatMessage{Role: RoleUser, Content: strings.Repeat("x", 1000)}
	var turns []ChatMessage
	for i := 0; i < 30; i++ {
		turns = append(turns, turn)
	}

	window := gw.truncateHistory(turns)
	assert.Less(t, len(window), len(turns))

	chars := 0
	for _, m := range window {
		chars += len(m.Content)
	}
	assert.LessOrEqual(t, chars, cfg.AIMaxChars)
	assert.LessOrEqual(t, len(window), cfg.AIMaxTurns)

	// Deterministic: the same input yields the same window.
	again := gw.truncateHistory(turns)
	assert.Equal(t, window, again)
}
