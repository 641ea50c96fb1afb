package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperfill/formfill/internal/db"
)

type memoryCache struct {
	pages    map[string]*db.FormPage
	failPuts bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{pages: map[string]*db.FormPage{}}
}

func (m *memoryCache) GetFreshFormPage(_ context.Context, url string) (*db.FormPage, error) {
	page := m.pages[url]
	if !page.IsFresh(time.Now()) {
		return nil, nil
	}
	return page, nil
}

func (m *memoryCache) UpsertFormPage(_ context.Context, page *db.FormPage, ttl time.Duration) error {
	if m.failPuts {
		return errors.New("cache unavailable")
	}
	expires := time.Now().Add(ttl)
	page.ID = uuid.New()
	page.ExpiresAt = &expires
	m.pages[page.URL] = page
	return nil
}

func (m *memoryCache) ExpireFormPage(_ context.Context, url string) error {
	if page, ok := m.pages[url]; ok {
		past := time.Now().Add(-time.Hour)
		page.ExpiresAt = &past
	}
	return nil
}

type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (s *stubRenderer) Render(context.Context, string) (string, error) {
	s.calls++
	return s.html, s.err
}

func formServer(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestCachedFetcher_ServesFromCache(t *testing.T) {
	server, hits := formServer(t, `<form><input id="email"></form>`)
	cache := newMemoryCache()
	f := NewCachedFetcher(cache, &CachedFetcherConfig{Options: fastOptions()})

	first, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.NotEqual(t, uuid.Nil, first.PageID)

	second, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, int32(1), hits.Load())

	require.NoError(t, f.InvalidateCache(context.Background(), server.URL))
	third, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, third.FromCache)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCachedFetcher_NilCache(t *testing.T) {
	server, hits := formServer(t, `<form><input id="email"></form>`)
	f := NewCachedFetcher(nil, &CachedFetcherConfig{Options: fastOptions()})

	for i := 0; i < 2; i++ {
		res, err := f.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.False(t, res.FromCache)
	}
	assert.Equal(t, int32(2), hits.Load())
	assert.NoError(t, f.InvalidateCache(context.Background(), server.URL))
}

func TestCachedFetcher_CacheWriteFailureIsNotFatal(t *testing.T) {
	server, _ := formServer(t, `<form><input id="email"></form>`)
	cache := newMemoryCache()
	cache.failPuts = true
	f := NewCachedFetcher(cache, &CachedFetcherConfig{Options: fastOptions()})

	res, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, res.PageID)
}

func TestCachedFetcher_BrowserFallback(t *testing.T) {
	server, _ := formServer(t, `<div id="app"></div>`)
	renderer := &stubRenderer{html: `<form><input id="email"></form>`}
	f := NewCachedFetcher(nil, &CachedFetcherConfig{Options: fastOptions(), Renderer: renderer})

	res, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, res.Rendered)
	assert.Contains(t, res.HTML, `id="email"`)
	assert.Equal(t, 1, renderer.calls)
}

func TestCachedFetcher_BrowserFallbackFailureKeepsHTTPResult(t *testing.T) {
	server, _ := formServer(t, `<div id="app"></div>`)
	renderer := &stubRenderer{err: errors.New("no chrome")}
	f := NewCachedFetcher(nil, &CachedFetcherConfig{Options: fastOptions(), Renderer: renderer})

	res, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, res.Rendered)
	assert.Equal(t, `<div id="app"></div>`, res.HTML)
}

func TestCachedFetcher_SkipsRendererWhenFormPresent(t *testing.T) {
	server, _ := formServer(t, `<form><input id="email"></form>`)
	renderer := &stubRenderer{}
	f := NewCachedFetcher(nil, &CachedFetcherConfig{Options: fastOptions(), Renderer: renderer})

	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Zero(t, renderer.calls)
}

func TestCachedFetcher_RejectsRestrictedURL(t *testing.T) {
	f := NewCachedFetcher(newMemoryCache(), nil)
	_, err := f.Fetch(context.Background(), "chrome://extensions")
	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestDefaultCachedFetcherConfig(t *testing.T) {
	config := DefaultCachedFetcherConfig()
	require.NotNil(t, config)
	assert.Equal(t, db.DefaultPageCacheTTL, config.CacheTTL)
	assert.NotNil(t, config.Options)
	assert.Nil(t, config.Renderer)
}

func TestDeref(t *testing.T) {
	s := "hello"
	n := 200
	assert.Equal(t, "", derefString(nil))
	assert.Equal(t, "hello", derefString(&s))
	assert.Equal(t, 0, derefInt(nil))
	assert.Equal(t, 200, derefInt(&n))
}
