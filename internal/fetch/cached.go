package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hyperfill/formfill/internal/db"
)

// PageCache stores fetched form pages. *db.DB implements it.
type PageCache interface {
	GetFreshFormPage(ctx context.Context, url string) (*db.FormPage, error)
	UpsertFormPage(ctx context.Context, page *db.FormPage, ttl time.Duration) error
	ExpireFormPage(ctx context.Context, url string) error
}

// Renderer renders a page in a browser and returns its HTML.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// CachedFetcher wraps URL fetching with an optional page cache and browser fallback.
type CachedFetcher struct {
	cache     PageCache
	renderer  Renderer
	options   *Options
	cacheTTL  time.Duration
	skipCache bool
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
	// Renderer is used when the HTTP response has no form controls. Nil disables the fallback.
	Renderer Renderer
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL: db.DefaultPageCacheTTL,
		Options:  DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher. cache may be nil.
func NewCachedFetcher(cache PageCache, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = db.DefaultPageCacheTTL
	}
	return &CachedFetcher{
		cache:     cache,
		renderer:  config.Renderer,
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
	}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
	PageID    uuid.UUID
}

// Fetch retrieves a URL, serving a fresh cached copy when one exists.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if err := CheckURL(urlStr); err != nil {
		return nil, err
	}

	useCache := f.cache != nil && !f.skipCache

	if useCache {
		cached, err := f.cache.GetFreshFormPage(ctx, urlStr)
		if err != nil {
			return nil, fmt.Errorf("failed to check cache: %w", err)
		}
		if cached != nil {
			return &CachedResult{
				Result: &Result{
					URL:        cached.URL,
					HTML:       derefString(cached.RawHTML),
					StatusCode: derefInt(cached.HTTPStatus),
					Rendered:   cached.Rendered,
				},
				FromCache: true,
				PageID:    cached.ID,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	if f.renderer != nil && ShouldUseBrowser(result.HTML) {
		html, err := f.renderer.Render(ctx, urlStr)
		if err != nil {
			if f.options.Verbose {
				log.Printf("[FETCH] Browser fallback failed for %s: %v", urlStr, err)
			}
		} else {
			result.HTML = html
			result.Rendered = true
		}
	}

	out := &CachedResult{Result: result}
	if useCache {
		page := &db.FormPage{
			URL:        urlStr,
			RawHTML:    &result.HTML,
			HTTPStatus: &result.StatusCode,
			Rendered:   result.Rendered,
		}
		if err := f.cache.UpsertFormPage(ctx, page, f.cacheTTL); err != nil {
			// the fetch itself succeeded
			log.Printf("[FETCH] Failed to cache %s: %v", urlStr, err)
		} else {
			out.PageID = page.ID
		}
	}

	return out, nil
}

// InvalidateCache forces a re-fetch of url on the next request.
func (f *CachedFetcher) InvalidateCache(ctx context.Context, urlStr string) error {
	if f.cache == nil {
		return nil
	}
	return f.cache.ExpireFormPage(ctx, urlStr)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
