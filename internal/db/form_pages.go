package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Form Page Methods
// -----------------------------------------------------------------------------

// UpsertFormPage stores a fetched page, keyed by URL, and sets page.ID
func (db *DB) UpsertFormPage(ctx context.Context, page *FormPage, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultPageCacheTTL
	}
	expires := time.Now().Add(ttl)
	if page.ExpiresAt != nil {
		expires = *page.ExpiresAt
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO form_pages (url, raw_html, http_status, rendered, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, NOW(), $5)
		 ON CONFLICT (url) DO UPDATE SET
		     raw_html = EXCLUDED.raw_html,
		     http_status = EXCLUDED.http_status,
		     rendered = EXCLUDED.rendered,
		     fetched_at = NOW(),
		     expires_at = EXCLUDED.expires_at
		 RETURNING id, fetched_at, expires_at`,
		page.URL, page.RawHTML, page.HTTPStatus, page.Rendered, expires,
	).Scan(&page.ID, &page.FetchedAt, &page.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to upsert form page: %w", err)
	}
	return nil
}

// GetFormPage retrieves a cached page by URL regardless of freshness. It returns nil when none exists.
func (db *DB) GetFormPage(ctx context.Context, url string) (*FormPage, error) {
	var p FormPage
	err := db.pool.QueryRow(ctx,
		`SELECT id, url, raw_html, http_status, rendered, fetched_at, expires_at
		 FROM form_pages WHERE url = $1`,
		url,
	).Scan(&p.ID, &p.URL, &p.RawHTML, &p.HTTPStatus, &p.Rendered, &p.FetchedAt, &p.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get form page: %w", err)
	}
	return &p, nil
}

// GetFreshFormPage returns the cached page only when it has not expired
func (db *DB) GetFreshFormPage(ctx context.Context, url string) (*FormPage, error) {
	page, err := db.GetFormPage(ctx, url)
	if err != nil || page == nil {
		return nil, err
	}
	if !page.IsFresh(time.Now()) {
		return nil, nil
	}
	return page, nil
}

// ExpireFormPage forces the next fetch of url to bypass the cache
func (db *DB) ExpireFormPage(ctx context.Context, url string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE form_pages SET expires_at = NOW() - INTERVAL '1 hour' WHERE url = $1`, url)
	if err != nil {
		return fmt.Errorf("failed to expire form page: %w", err)
	}
	return nil
}
