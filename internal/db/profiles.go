package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hyperfill/formfill/internal/types"
)

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

// CreateProfile stores an imported profile and returns its ID
func (db *DB) CreateProfile(ctx context.Context, sourceName string, p *types.Profile) (uuid.UUID, error) {
	if p == nil {
		return uuid.Nil, fmt.Errorf("profile cannot be nil")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profiles (source_name, email, data)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		sourceName, strings.ToLower(strings.TrimSpace(p.Email)), data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return id, nil
}

// GetProfile retrieves a profile by ID. It returns nil when no such profile exists.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileRecord, error) {
	var rec ProfileRecord
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, source_name, data, created_at, updated_at
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.SourceName, &data, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	rec.Profile = &types.Profile{}
	if err := json.Unmarshal(data, rec.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}
	return &rec, nil
}

// DeleteProfile removes a profile
func (db *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}
