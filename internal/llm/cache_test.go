package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codegenome/internal/store"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (m *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return false, errors.New("cache down")
	}
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func prompt(p string) Request {
	return Request{System: "sys", Prompt: p}
}

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestCached_IdenticalRequestServedOnce(t *testing.T) {
	mock := NewMockProvider().Reply(`{"level":"beginner"}`)
	p := Chain(mock, Cached(newMemCache(), nil, 0))

	for i := range 2 {
		resp, err := p.Generate(context.Background(), prompt("same"))
		require.NoError(t, err, "call %d", i)
		assert.JSONEq(t, `{"level":"beginner"}`, string(resp.Content))
	}
	assert.Equal(t, 1, mock.CallCount())
}

func TestCached_DifferentPromptsMiss(t *testing.T) {
	mock := NewMockProvider().Reply(`{"n":1}`).Reply(`{"n":2}`)
	p := Chain(mock, Cached(newMemCache(), nil, 0))

	_, err := p.Generate(context.Background(), prompt("a"))
	require.NoError(t, err)
	resp, err := p.Generate(context.Background(), prompt("b"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(resp.Content))
}

func TestCached_FailuresAndTruncationAreNotStored(t *testing.T) {
	c := newMemCache()
	mock := NewMockProvider().Fail(unavailable())
	mock.push(MockResponse{Content: []byte(`{"cut`), Truncated: true})
	mock.Reply(`{"ok":true}`)
	p := Chain(mock, Cached(c, nil, 0))

	_, err := p.Generate(context.Background(), prompt("x"))
	assert.Error(t, err)
	resp, err := p.Generate(context.Background(), prompt("x"))
	require.NoError(t, err)
	assert.True(t, resp.Truncated)
	assert.Zero(t, c.len())

	resp, err = p.Generate(context.Background(), prompt("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 1, c.len())
}

func TestCached_RejectedRepliesAreNotStored(t *testing.T) {
	cache := newMemCache()
	mock := NewMockProvider().
		Reply("Sorry, I cannot help with that.").
		Reply(`{"level":"beginner"}`)
	p := Chain(mock, Cached(cache, nil, 0))

	req := prompt("same")
	req.Accept = func(content json.RawMessage) error {
		if !json.Valid(content) {
			return errors.New("not json")
		}
		return nil
	}

	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I cannot help with that.", string(resp.Content), "rejected replies still reach the caller")
	assert.Equal(t, 0, cache.len())

	for range 2 {
		resp, err = p.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.JSONEq(t, `{"level":"beginner"}`, string(resp.Content))
	}
	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, 1, cache.len())
}

func TestCached_StoredReplyRejectedIsAMiss(t *testing.T) {
	cache := newMemCache()
	seed := Chain(NewMockProvider().Reply("plain words"), Cached(cache, nil, 0))
	_, err := seed.Generate(context.Background(), prompt("same"))
	require.NoError(t, err)
	require.Equal(t, 1, cache.len())

	mock := NewMockProvider().Reply(`{"ok":true}`)
	p := Chain(mock, Cached(cache, nil, 0))
	req := prompt("same")
	req.Accept = func(content json.RawMessage) error {
		if !json.Valid(content) {
			return errors.New("not json")
		}
		return nil
	}
	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 1, mock.CallCount())
}

func TestCached_LookupFailureFallsThrough(t *testing.T) {
	c := newMemCache()
	c.failGet = true
	mock := NewMockProvider().Reply(`{}`)

	_, err := Chain(mock, Cached(c, nil, 0)).Generate(context.Background(), prompt("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestCached_NilCacheIsSkipped(t *testing.T) {
	assert.Nil(t, Cached(nil, nil, 0))
}

func TestRecordAndCache_EventsPerCall(t *testing.T) {
	repo := openEvents(t)
	mock := NewMockProvider(MockResponse{Content: []byte(`{"a":1}`), Usage: Usage{InputTokens: 12, OutputTokens: 3}})
	p := Chain(mock, Cached(newMemCache(), repo, 0), Record(repo, "gemini"))
	ctx := WithPurpose(context.Background(), "quiz")

	for i := range 2 {
		_, err := p.Generate(ctx, prompt("same"))
		require.NoError(t, err, "call %d", i)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	hit, call := events[0], events[1]
	assert.True(t, hit.Cached)
	assert.Equal(t, "cache", hit.Provider)
	assert.Equal(t, "quiz", hit.Purpose)

	assert.False(t, call.Cached)
	assert.Equal(t, "gemini", call.Provider)
	assert.Equal(t, "mock", call.Model)
	assert.Equal(t, 12, call.InputTokens)
	assert.Contains(t, call.RequestBody, "[user]\nsame")
}

func TestRecord_FailureIsRecorded(t *testing.T) {
	repo := openEvents(t)
	p := Chain(NewMockProvider().Fail(unavailable()), Record(repo, "openai"))

	_, err := p.Generate(WithPurpose(context.Background(), "report"), prompt("x"))
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Contains(t, events[0].ErrorMessage, "unavailable")
}

func TestCacheKey_StableAndSensitive(t *testing.T) {
	a := CacheKey("m", prompt("x"))
	assert.Equal(t, a, CacheKey("m", prompt("x")))
	assert.NotEqual(t, a, CacheKey("other", prompt("x")))
	assert.NotEqual(t, a, CacheKey("m", prompt("y")))

	warm := prompt("x")
	warm.Temperature = 0.7
	assert.NotEqual(t, a, CacheKey("m", warm))

	shaped := prompt("x")
	shaped.Schema = &Schema{Name: "quiz"}
	assert.NotEqual(t, a, CacheKey("m", shaped))
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Second):
		return &Response{}, nil
	}
}

func (slowProvider) ModelID() string { return "slow" }

func TestTimeout_CancelsSlowProvider(t *testing.T) {
	p := Chain(slowProvider{}, Timeout(10*time.Millisecond))

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Nil(t, Timeout(0))
}
