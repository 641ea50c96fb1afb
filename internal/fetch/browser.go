package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultBrowserTimeout bounds a full headless render.
const DefaultBrowserTimeout = 45 * time.Second

// WithBrowser renders a page in a headless browser and returns the HTML once a form
// control has appeared. Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, urlStr string, timeout time.Duration, verbose bool) (string, error) {
	if err := CheckURL(urlStr); err != nil {
		return "", err
	}
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}

	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", urlStr)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Signup forms are often injected after load
		chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			_ = chromedp.WaitReady("input, textarea, select", chromedp.ByQuery).Do(waitCtx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}

// BrowserRenderer adapts WithBrowser to the Renderer interface.
type BrowserRenderer struct {
	Timeout time.Duration
	Verbose bool
}

// Render implements Renderer.
func (b BrowserRenderer) Render(ctx context.Context, urlStr string) (string, error) {
	html, err := WithBrowser(ctx, urlStr, b.Timeout, b.Verbose)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", urlStr, err)
	}
	return html, nil
}
