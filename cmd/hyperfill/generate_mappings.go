package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperfill/formfill/internal/formmap"
	"github.com/hyperfill/formfill/internal/observability"
)

var (
	batchDir          string
	batchOut          string
	batchWorkers      int
	batchFormSelector string
)

var generateMappingsCmd = &cobra.Command{
	Use:   "generate-mappings",
	Short: "Generate mappings for every HTML file in a directory",
	Long: "Classifies each *.html file of a directory concurrently and writes one JSON result per file. " +
		"Files whose form scope cannot be found get a result carrying the error.",
	RunE: runGenerateMappings,
}

func init() {
	generateMappingsCmd.Flags().StringVar(&batchDir, "dir", "", "Directory of saved HTML pages (required)")
	generateMappingsCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Output directory for the JSON results (required)")
	generateMappingsCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent workers (default from config)")
	generateMappingsCmd.Flags().StringVar(&batchFormSelector, "form-selector", "", "CSS selector of the form in every page")

	for _, name := range []string{"dir", "out"} {
		if err := generateMappingsCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(generateMappingsCmd)
}

func runGenerateMappings(cmd *cobra.Command, _ []string) error {
	paths, err := filepath.Glob(filepath.Join(batchDir, "*.html"))
	if err != nil {
		return fmt.Errorf("failed to list HTML files: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .html files found in %s", batchDir)
	}
	sort.Strings(paths)

	workers := batchWorkers
	if workers <= 0 {
		workers = appConfig.Workers
	}

	results, err := formmap.GenerateFiles(cmd.Context(), paths, batchFormSelector, workers)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Result.Error != "" {
			failed++
		}
		data, err := json.MarshalIndent(r.Result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result for %s: %w", r.Path, err)
		}
		name := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path)) + ".json"
		if err := os.WriteFile(filepath.Join(batchOut, name), append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintBatchSummary(results)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d mappings in %s (%d with errors)\n", len(results), batchOut, failed)
	return nil
}
