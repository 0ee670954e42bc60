package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysScriptInOrder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: []byte(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}})
	mock.Reply(`{"b":2}`).Fail(&Error{Kind: KindRateLimit})

	first, err := mock.Generate(context.Background(), Request{Prompt: "one"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(first.Content))
	assert.Equal(t, 15, first.Usage.Total())
	assert.Equal(t, "mock", first.Model)

	second, err := mock.Generate(context.Background(), Request{Prompt: "two"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(second.Content))

	_, err = mock.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrRateLimit)

	_, err = mock.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrProviderUnavailable, "exhausted script")

	calls := mock.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "one", calls[0].Prompt)
	calls[0].Prompt = "changed"
	assert.Equal(t, "one", mock.Calls()[0].Prompt, "Calls returns a copy")
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unlabelled", PurposeFrom(ctx))
	assert.Equal(t, "quiz", PurposeFrom(WithPurpose(ctx, "quiz")))
}

func TestChain_FirstMiddlewareIsOutermost(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Provider) Provider {
			return wrap(next, func(ctx context.Context, req Request) (*Response, error) {
				order = append(order, name)
				return next.Generate(ctx, req)
			})
		}
	}

	p := Chain(NewMockProvider().Reply(`{}`), tag("outer"), nil, tag("inner"))
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, "mock", p.ModelID())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, "CODEGENOME_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, ""},
		{"openrouter without key", Config{Provider: "openrouter"}, "CODEGENOME_OPENROUTER_API_KEY"},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, ""},
		{"mock needs no key", Config{Provider: "mock"}, ""},
		{"unknown provider", Config{Provider: "nope"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.True(t, tt.cfg.HasKey())
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
			assert.False(t, tt.cfg.HasKey())
		})
	}
}

func TestDiscoverConfig_FollowsPriority(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "o-key", cfg.OpenAI.APIKey)
	assert.Empty(t, cfg.Anthropic.APIKey)
	assert.True(t, cfg.HasKey())
}

func TestDiscoverConfig_NoneFound(t *testing.T) {
	for _, k := range standardKeys {
		t.Setenv(k.env, "")
	}
	_, ok := DiscoverConfig()
	assert.False(t, ok)
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg.Provider = "nope"
	_, err = NewProvider(context.Background(), cfg, nil, nil)
	assert.Error(t, err)

	cfg.Provider = "openai"
	_, err = NewProvider(context.Background(), cfg, nil, nil)
	assert.ErrorContains(t, err, "initializing openai provider")

	cfg.OpenAI.APIKey = "k"
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", p.ModelID(), "alias resolved through the middleware chain")
}

func TestKindOf(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)

	k, ok := KindOf(Truncated(nil))
	require.True(t, ok)
	assert.Equal(t, KindTruncated, k)
}
