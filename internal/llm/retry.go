package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// Retry re-sends failed requests with exponential backoff and ±20%
// jitter. Rate limits wait for the server's Retry-After when given. An
// invalid reply is retried once; rejected and truncated requests and
// context errors are returned immediately.
func Retry(cfg RetryConfig) Middleware {
	attempts := max(cfg.MaxAttempts, 1)
	return func(next Provider) Provider {
		return wrap(next, func(ctx context.Context, req Request) (*Response, error) {
			var (
				lastErr     error
				invalidSeen bool
			)
			for attempt := range attempts {
				resp, err := next.Generate(ctx, req)
				if err == nil {
					return resp, nil
				}
				lastErr = err

				if !retryable(err, &invalidSeen) || attempt == attempts-1 {
					break
				}

				wait := cfg.delay(attempt, err)
				logrus.WithError(err).WithFields(logrus.Fields{
					"purpose": PurposeFrom(ctx),
					"attempt": attempt + 1,
					"wait":    wait,
				}).Debug("retrying LLM request")

				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(wait):
				}
			}
			return nil, lastErr
		})
	}
}

func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		// Transport errors that escaped classification.
		return true
	}
	switch kind {
	case KindRejected, KindTruncated:
		return false
	case KindInvalidResponse:
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	default:
		return true
	}
}

func (c RetryConfig) delay(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindRateLimit && e.RetryAfter > 0 {
		return e.RetryAfter
	}

	mult := c.Multiplier
	if mult < 1 {
		mult = 1
	}
	wait := float64(c.InitialWait) * math.Pow(mult, float64(attempt))
	if c.MaxWait > 0 {
		wait = math.Min(wait, float64(c.MaxWait))
	}
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
