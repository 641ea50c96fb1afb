// Package fetch retrieves the HTML of pages that carry signup and submission forms.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/codeGROOVE-dev/retry"

	"github.com/hyperfill/formfill/internal/sites"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Hyperfill/1.0)"

// DefaultAttempts is how many times a transient failure is tried in total.
const DefaultAttempts = 3

// MaxBodyBytes bounds how much of a response body is read.
const MaxBodyBytes = 10 << 20

// Result holds the content retrieved from a URL.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
	Rendered    bool
}

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Retryable  bool
	Invalid    bool // rejected before any request was made
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	Attempts   uint
	RetryDelay time.Duration
	Verbose    bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:    DefaultTimeout,
		UserAgent:  DefaultUserAgent,
		Attempts:   DefaultAttempts,
		RetryDelay: 500 * time.Millisecond,
	}
}

// CheckURL rejects URLs that cannot be fetched: malformed ones, browser-internal pages and non-HTTP schemes.
func CheckURL(urlStr string) error {
	if sites.IsRestrictedURL(urlStr) {
		return &Error{URL: urlStr, Message: "restricted URL", Invalid: true}
	}
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return &Error{URL: urlStr, Message: "invalid URL", Invalid: true, Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &Error{URL: urlStr, Message: fmt.Sprintf("unsupported scheme %q", parsed.Scheme), Invalid: true}
	}
	return nil
}

// URL retrieves HTML content from a URL, retrying transient failures.
// On a non-2xx response the last result is returned alongside the error.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := CheckURL(urlStr); err != nil {
		return nil, err
	}

	attempts := opts.Attempts
	if attempts == 0 {
		attempts = 1
	}

	client := &http.Client{Timeout: opts.Timeout}
	var (
		last    *Result
		lastErr error
	)

	result, err := retry.DoWithData(
		func() (*Result, error) {
			res, err := get(ctx, client, urlStr, opts)
			if res != nil {
				last = res
			}
			lastErr = err
			return res, err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(opts.RetryDelay),
		retry.MaxJitter(opts.RetryDelay/2+time.Millisecond),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			if opts.Verbose {
				log.Printf("[FETCH] Retry %d for %s: %v", n+1, urlStr, err)
			}
		}),
	)
	if err != nil {
		// report the final attempt's *Error, not the retry summary
		if lastErr != nil && ctx.Err() == nil {
			return last, lastErr
		}
		return last, err
	}
	return result, nil
}

func get(ctx context.Context, client *http.Client, urlStr string, opts *Options) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Retryable: ctx.Err() == nil, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Retryable: true, Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
			Retryable:  retryableStatus(resp.StatusCode),
		}
	}

	return result, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func isRetryable(err error) bool {
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		return fetchErr.Retryable
	}
	return false
}

// HasFormControls reports whether the markup contains any fillable control.
func HasFormControls(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return doc.Find("input, textarea, select").Length() > 0
}

// ShouldUseBrowser returns true when a plain HTTP fetch produced no form controls,
// indicating the form is rendered by JavaScript.
func ShouldUseBrowser(html string) bool {
	return !HasFormControls(html)
}
