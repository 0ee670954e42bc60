// Package llm sends single-turn prompts to hosted language models and
// returns their replies. Providers are composed with middleware for
// caching, deadlines, retries and usage recording.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one reply per request.
type Provider interface {
	// Generate sends req and returns the model's reply. When req.Schema
	// is set the reply has already been checked against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider is configured to call.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the provider for native structured output.
	// Without it Content is free text that may wrap JSON in prose.
	Schema *Schema

	MaxTokens   int
	Temperature float64

	// Accept, when set, reports whether the caller can use a reply.
	// Rejected replies are still returned but never cached. It is not
	// part of the cache key.
	Accept func(content json.RawMessage) error
}

// Response is a model reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is the model that served the request, which may differ from
	// the configured alias.
	Model string
	// Truncated is set when generation stopped at MaxTokens.
	Truncated bool
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "quiz" or "report".
// The label is stored with recorded events and cache hits.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unlabelled".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unlabelled"
}
