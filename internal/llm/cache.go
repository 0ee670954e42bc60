package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/codegenome/internal/store"
)

// Cache stores replies keyed by request fingerprint. A miss is
// (false, nil).
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// DefaultCacheTTL is how long a cached reply stays valid.
const DefaultCacheTTL = 24 * time.Hour

// cachedReply keeps Content as a string since free-text replies are not
// valid JSON.
type cachedReply struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// Cached serves repeated identical requests from c. Cache failures fall
// through to the provider. Only complete replies that pass req.Accept are
// stored, and a stored reply Accept rejects counts as a miss. Hits are
// recorded in repo as cached events when repo is non-nil. A ttl <= 0
// leaves expiry to the cache.
func Cached(c Cache, repo store.EventRepo, ttl time.Duration) Middleware {
	if c == nil {
		return nil
	}
	return func(next Provider) Provider {
		return wrap(next, func(ctx context.Context, req Request) (*Response, error) {
			key := CacheKey(next.ModelID(), req)

			var hit cachedReply
			found, err := c.GetJSON(ctx, key, &hit)
			if err != nil {
				logrus.WithError(err).Debug("llm cache lookup failed")
			}
			if found && !accepted(req, json.RawMessage(hit.Content)) {
				found = false
			}
			if found {
				resp := &Response{Content: json.RawMessage(hit.Content), Model: hit.Model}
				if repo != nil {
					appendEvent(ctx, repo, store.LLMRequestEventData{
						Provider:     "cache",
						Model:        hit.Model,
						Purpose:      PurposeFrom(ctx),
						Success:      true,
						Cached:       true,
						RequestBody:  describe(req),
						ResponseBody: hit.Content,
					})
				}
				return resp, nil
			}

			resp, err := next.Generate(ctx, req)
			if err != nil {
				return nil, err
			}
			if resp.Truncated || !accepted(req, resp.Content) {
				return resp, nil
			}
			entry := cachedReply{Content: string(resp.Content), Model: resp.Model}
			if err := c.SetJSON(ctx, key, entry, ttl); err != nil {
				logrus.WithError(err).Debug("llm cache store failed")
			}
			return resp, nil
		})
	}
}

func accepted(req Request, content json.RawMessage) bool {
	if req.Accept == nil {
		return true
	}
	if err := req.Accept(content); err != nil {
		logrus.WithError(err).Debug("llm reply not cacheable")
		return false
	}
	return true
}

// CacheKey fingerprints everything that shapes a reply.
func CacheKey(model string, req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "model=%s\nsystem=%s\nprompt=%s\n", model, req.System, req.Prompt)
	if req.Schema != nil {
		fmt.Fprintf(h, "schema=%s\n", req.Schema.Name)
	}
	fmt.Fprintf(h, "max_tokens=%d\ntemperature=%.3f\n", req.MaxTokens, req.Temperature)
	return "llm:" + hex.EncodeToString(h.Sum(nil))
}
