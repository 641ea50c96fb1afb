package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/hyperfill/formfill/internal/sites"
	"github.com/hyperfill/formfill/internal/store"
	"github.com/hyperfill/formfill/internal/types"
)

func openStore() (*store.Store, error) {
	st, err := store.Open(appConfig.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// Dataset sources reported by effectiveSites.
const (
	sourceStored  = "stored override"
	sourceBundled = "bundled dataset"
)

// effectiveSites returns the stored override when it is non-empty, otherwise the bundled dataset file.
func effectiveSites(ctx context.Context, st *store.Store) ([]types.SiteDefinition, string, error) {
	override, err := st.SiteMappings(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(override) > 0 {
		return override, sourceStored, nil
	}

	bundled, err := sites.Load(appConfig.DatasetPath)
	if err != nil {
		return nil, "", err
	}
	if appConfig.Verbose {
		log.Printf("[SITES] Using %s: %s", sourceBundled, appConfig.DatasetPath)
	}
	return sites.Effective(bundled.Sites, override), sourceBundled, nil
}
