package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/codegenome/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → cache → timeout → retry → record → backend.
// A nil eventRepo skips recording and a nil cache skips caching.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, cache Cache) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Chain(base,
		Cached(cache, eventRepo, 0),
		Timeout(cfg.Timeout),
		Retry(cfg.Retry),
		Record(eventRepo, cfg.Provider),
	), nil
}
