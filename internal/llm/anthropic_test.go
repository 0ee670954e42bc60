package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicReply(text, stop string) string {
	body, _ := json.Marshal(map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"content":     []map[string]any{{"type": "text", "text": text}},
		"usage":       map[string]any{"input_tokens": 21, "output_tokens": 8},
	})
	return string(body)
}

func anthropicServer(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL})
	require.NoError(t, err)
	return p
}

func TestAnthropic_Generate(t *testing.T) {
	var got map[string]any
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(anthropicReply(`{"title":"Closures","minutes":20}`, "end_turn")))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write lessons.",
		Prompt:    "Outline closures",
		Schema:    lessonSchema,
		MaxTokens: 512,
	})
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5", got["model"])
	assert.EqualValues(t, 512, got["max_tokens"])
	assert.Equal(t, "claude-haiku-4-5", p.ModelID())
	assert.JSONEq(t, `{"title":"Closures","minutes":20}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 21, OutputTokens: 8}, resp.Usage)
	assert.False(t, resp.Truncated)
}

func TestAnthropic_RateLimitCarriesRetryAfter(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "4")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "hi", MaxTokens: 16})
	require.ErrorIs(t, err, ErrRateLimit)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 4*time.Second, e.RetryAfter)
	assert.Equal(t, "anthropic", e.Provider)
}

func TestAnthropic_BadKeyRejected(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "hi", MaxTokens: 16})
	assert.ErrorIs(t, err, ErrRequestRejected)
}

func TestAnthropic_TruncatedStructuredReply(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(anthropicReply(`{"title":"Clo`, "max_tokens")))
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "hi", Schema: lessonSchema, MaxTokens: 4})
	assert.ErrorIs(t, err, ErrMaxTokensExceeded)

	resp, err := p.Generate(context.Background(), Request{Prompt: "hi", MaxTokens: 4})
	require.NoError(t, err)
	assert.True(t, resp.Truncated)
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}
