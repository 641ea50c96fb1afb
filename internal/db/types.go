package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyperfill/formfill/internal/types"
)

// DefaultPageCacheTTL is how long a fetched form page is served from cache
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// ProfileRecord is a stored profile with its bookkeeping columns
type ProfileRecord struct {
	ID         uuid.UUID      `json:"id"`
	SourceName string         `json:"source_name"`
	Profile    *types.Profile `json:"profile"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// FormPage is a cached copy of a page that carries a form
type FormPage struct {
	ID         uuid.UUID  `json:"id"`
	URL        string     `json:"url"`
	RawHTML    *string    `json:"raw_html,omitempty"`
	HTTPStatus *int       `json:"http_status,omitempty"`
	Rendered   bool       `json:"rendered"`
	FetchedAt  time.Time  `json:"fetched_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// IsFresh reports whether the page may still be served at now
func (p *FormPage) IsFresh(now time.Time) bool {
	if p == nil || p.RawHTML == nil {
		return false
	}
	if p.ExpiresAt == nil {
		return true
	}
	return now.Before(*p.ExpiresAt)
}
