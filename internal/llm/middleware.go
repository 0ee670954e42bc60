package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/codegenome/internal/store"
)

// Middleware decorates a Provider.
type Middleware func(Provider) Provider

// Chain applies mws to p with the first middleware outermost. Nil
// entries are skipped so optional layers can be passed inline.
func Chain(p Provider, mws ...Middleware) Provider {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			p = mws[i](p)
		}
	}
	return p
}

// generateFunc adapts a function to Provider, reporting inner's model.
type generateFunc struct {
	inner Provider
	fn    func(ctx context.Context, req Request) (*Response, error)
}

func (g generateFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return g.fn(ctx, req)
}

func (g generateFunc) ModelID() string { return g.inner.ModelID() }

func wrap(inner Provider, fn func(ctx context.Context, req Request) (*Response, error)) Provider {
	return generateFunc{inner: inner, fn: fn}
}

// Timeout bounds each call, retries included.
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return nil
	}
	return func(next Provider) Provider {
		return wrap(next, func(ctx context.Context, req Request) (*Response, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next.Generate(ctx, req)
		})
	}
}

// Record appends one LLM event per provider call to repo. provider names
// the backend, e.g. "gemini". Recording failures are logged, never
// returned.
func Record(repo store.EventRepo, provider string) Middleware {
	if repo == nil {
		return nil
	}
	return func(next Provider) Provider {
		return wrap(next, func(ctx context.Context, req Request) (*Response, error) {
			start := time.Now()
			resp, err := next.Generate(ctx, req)

			ev := store.LLMRequestEventData{
				Provider:    provider,
				Model:       next.ModelID(),
				Purpose:     PurposeFrom(ctx),
				LatencyMs:   time.Since(start).Milliseconds(),
				Success:     err == nil,
				RequestBody: describe(req),
			}
			if resp != nil {
				ev.InputTokens = resp.Usage.InputTokens
				ev.OutputTokens = resp.Usage.OutputTokens
				if resp.Model != "" {
					ev.Model = resp.Model
				}
				ev.ResponseBody = string(resp.Content)
			}
			if err != nil {
				ev.ErrorMessage = err.Error()
			}
			appendEvent(ctx, repo, ev)
			return resp, err
		})
	}
}

func appendEvent(ctx context.Context, repo store.EventRepo, ev store.LLMRequestEventData) {
	if err := repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); err != nil {
		logrus.WithError(err).WithField("purpose", ev.Purpose).Warn("failed to record LLM event")
	}
}

// describe renders a request for the event log.
func describe(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
