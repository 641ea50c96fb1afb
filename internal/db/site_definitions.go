package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hyperfill/formfill/internal/types"
)

// -----------------------------------------------------------------------------
// Site Definition Methods
// -----------------------------------------------------------------------------

// UpsertSiteDefinition inserts a definition or replaces the one with the same ID.
// It reports whether an existing definition was replaced.
func (db *DB) UpsertSiteDefinition(ctx context.Context, def *types.SiteDefinition) (bool, error) {
	if def == nil || def.ID == "" {
		return false, fmt.Errorf("site definition id cannot be empty")
	}
	data, err := json.Marshal(def)
	if err != nil {
		return false, fmt.Errorf("failed to marshal site definition: %w", err)
	}

	var inserted bool
	err = db.pool.QueryRow(ctx,
		`INSERT INTO site_definitions (id, name, url_pattern, category, spam_score, definition)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     name = EXCLUDED.name,
		     url_pattern = EXCLUDED.url_pattern,
		     category = EXCLUDED.category,
		     spam_score = EXCLUDED.spam_score,
		     definition = EXCLUDED.definition,
		     updated_at = NOW()
		 RETURNING (xmax = 0)`,
		def.ID, def.Name, def.URLPattern, def.Category, def.SpamScore, data,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert site definition %s: %w", def.ID, err)
	}
	return !inserted, nil
}

// GetSiteDefinition retrieves a definition by ID. It returns nil when none exists.
func (db *DB) GetSiteDefinition(ctx context.Context, id string) (*types.SiteDefinition, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT definition FROM site_definitions WHERE id = $1`, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get site definition: %w", err)
	}
	return decodeSiteDefinition(data)
}

// ListSiteDefinitions returns all definitions in insertion order
func (db *DB) ListSiteDefinitions(ctx context.Context) ([]types.SiteDefinition, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT definition FROM site_definitions ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list site definitions: %w", err)
	}
	defer rows.Close()

	defs := []types.SiteDefinition{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan site definition: %w", err)
		}
		def, err := decodeSiteDefinition(data)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate site definitions: %w", err)
	}
	return defs, nil
}

// DeleteAllSiteDefinitions clears the table
func (db *DB) DeleteAllSiteDefinitions(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM site_definitions`); err != nil {
		return fmt.Errorf("failed to delete site definitions: %w", err)
	}
	return nil
}

func decodeSiteDefinition(data []byte) (*types.SiteDefinition, error) {
	var def types.SiteDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode site definition: %w", err)
	}
	if def.Mappings == nil {
		def.Mappings = types.Mapping{}
	}
	return &def, nil
}
