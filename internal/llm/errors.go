package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Sentinels matched with errors.Is against an *Error of the same kind.
var (
	ErrProviderUnavailable = errors.New("llm provider unavailable")
	ErrRateLimit           = errors.New("llm rate limited")
	ErrRequestRejected     = errors.New("llm request rejected")
	ErrInvalidResponse     = errors.New("invalid llm response")
	ErrMaxTokensExceeded   = errors.New("llm response truncated at max tokens")
)

// Kind classifies a provider failure.
type Kind int

const (
	KindUnavailable Kind = iota
	KindRateLimit
	// KindRejected covers requests the provider refused outright, such as
	// bad credentials or a malformed request. They are not retried.
	KindRejected
	KindInvalidResponse
	KindTruncated
)

func (k Kind) sentinel() error {
	switch k {
	case KindRateLimit:
		return ErrRateLimit
	case KindRejected:
		return ErrRequestRejected
	case KindInvalidResponse:
		return ErrInvalidResponse
	case KindTruncated:
		return ErrMaxTokensExceeded
	default:
		return ErrProviderUnavailable
	}
}

// Error is returned by providers and by reply parsing.
type Error struct {
	Kind     Kind
	Provider string
	// RetryAfter is the server's requested back-off for rate limits.
	RetryAfter time.Duration
	// Content is the offending reply for invalid or truncated responses.
	Content json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Kind == KindRateLimit && e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Invalid reports a reply that could not be used.
func Invalid(content json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: err}
}

// Truncated reports a reply cut off at the token limit.
func Truncated(content json.RawMessage) *Error {
	return &Error{Kind: KindTruncated, Content: content}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// fromStatus classifies an HTTP failure reported by a provider SDK.
func fromStatus(provider string, status int, header http.Header, err error) *Error {
	e := &Error{Provider: provider, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.RetryAfter = retryAfter(header)
	case status == http.StatusRequestTimeout, status >= 500, status == 0:
		e.Kind = KindUnavailable
	case status >= 400:
		e.Kind = KindRejected
	default:
		e.Kind = KindUnavailable
	}
	return e
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
