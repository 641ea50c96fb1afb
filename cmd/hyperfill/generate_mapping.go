package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperfill/formfill/internal/db"
	"github.com/hyperfill/formfill/internal/fetch"
	"github.com/hyperfill/formfill/internal/formmap"
	"github.com/hyperfill/formfill/internal/observability"
	"github.com/hyperfill/formfill/internal/sites"
	"github.com/hyperfill/formfill/internal/types"
)

var (
	mappingHTML         string
	mappingURL          string
	mappingFormSelector string
	mappingMerge        string
	mappingUseBrowser   bool
	mappingMeta         = sites.DefaultMetadata()
)

var generateMappingCmd = &cobra.Command{
	Use:   "generate-mapping",
	Short: "Generate a site definition from a form's markup",
	Long: "Classifies the form controls of a page, maps each recognizable control to a CSS selector and " +
		"prints the resulting site definition. With --merge the definition is upserted into a dataset file.",
	RunE: runGenerateMapping,
}

func init() {
	flags := generateMappingCmd.Flags()
	flags.StringVar(&mappingHTML, "html", "", "Path to a saved HTML page")
	flags.StringVar(&mappingURL, "url", "", "URL of the page to fetch")
	flags.StringVar(&mappingFormSelector, "form-selector", "", "CSS selector of the form to scope classification to")
	flags.StringVar(&mappingMerge, "merge", "", "Upsert the definition into this dataset file")
	flags.BoolVar(&mappingUseBrowser, "use-browser", false, "Render the page in a headless browser when it has no form controls")

	flags.StringVar(&mappingMeta.ID, "id", mappingMeta.ID, "Site id")
	flags.StringVar(&mappingMeta.Name, "name", mappingMeta.Name, "Site display name")
	flags.StringVar(&mappingMeta.URLPattern, "url-pattern", mappingMeta.URLPattern, "Host substring the site matches")
	flags.StringVar(&mappingMeta.PathPattern, "path-pattern", mappingMeta.PathPattern, "Path substring the site matches")
	flags.StringVar(&mappingMeta.Category, "category", mappingMeta.Category, "Site category")
	flags.IntVar(&mappingMeta.SpamScore, "spam-score", mappingMeta.SpamScore, "Spam score of the site")

	generateMappingCmd.MarkFlagsOneRequired("html", "url")
	generateMappingCmd.MarkFlagsMutuallyExclusive("html", "url")

	rootCmd.AddCommand(generateMappingCmd)
}

func runGenerateMapping(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	markup, err := loadMarkup(ctx)
	if err != nil {
		return err
	}

	result, err := formmap.Generate(markup, mappingFormSelector)
	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMapping(result)
	}
	var scopeErr *formmap.ScopeNotFoundError
	if errors.As(err, &scopeErr) {
		_ = printJSON(cmd.OutOrStdout(), map[string]string{"error": result.Error})
		return err
	}
	if err != nil {
		return err
	}

	meta := metadataFromFlags(cmd)
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid site metadata: %w", err)
	}

	def, err := sites.Assemble(meta, result)
	if err != nil {
		return err
	}

	if mappingMerge != "" {
		if err := mergeDefinition(cmd, *def); err != nil {
			return err
		}
	}

	return printJSON(cmd.OutOrStdout(), def)
}

// metadataFromFlags applies config defaults to metadata fields whose flags were not set
func metadataFromFlags(cmd *cobra.Command) sites.Metadata {
	meta := mappingMeta
	flags := cmd.Flags()
	if !flags.Changed("category") && appConfig.DefaultCategory != "" {
		meta.Category = appConfig.DefaultCategory
	}
	if !flags.Changed("spam-score") && appConfig.DefaultSpamScore > 0 {
		meta.SpamScore = appConfig.DefaultSpamScore
	}
	if !flags.Changed("url-pattern") && appConfig.DefaultURLPattern != "" {
		meta.URLPattern = appConfig.DefaultURLPattern
	}
	return meta
}

func loadMarkup(ctx context.Context) (string, error) {
	if mappingHTML != "" {
		data, err := os.ReadFile(mappingHTML)
		if err != nil {
			return "", fmt.Errorf("failed to read HTML file: %w", err)
		}
		return string(data), nil
	}

	fetcher, closeCache, err := newFetcher(ctx)
	if err != nil {
		return "", err
	}
	defer closeCache()

	page, err := fetcher.Fetch(ctx, mappingURL)
	if err != nil {
		return "", err
	}
	if appConfig.Verbose {
		log.Printf("[FETCH] %s: %d bytes (cached=%t, rendered=%t)", mappingURL, len(page.HTML), page.FromCache, page.Rendered)
	}
	return page.HTML, nil
}

// newFetcher builds a fetcher that caches pages in PostgreSQL when a database is configured
func newFetcher(ctx context.Context) (*fetch.CachedFetcher, func(), error) {
	opts := fetch.DefaultOptions()
	if appConfig.FetchTimeout > 0 {
		opts.Timeout = time.Duration(appConfig.FetchTimeout) * time.Second
	}
	opts.Verbose = appConfig.Verbose

	cfg := &fetch.CachedFetcherConfig{Options: opts}
	if mappingUseBrowser || appConfig.UseBrowser {
		cfg.Renderer = fetch.BrowserRenderer{Verbose: appConfig.Verbose}
	}

	if appConfig.DatabaseURL == "" {
		return fetch.NewCachedFetcher(nil, cfg), func() {}, nil
	}

	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}
	return fetch.NewCachedFetcher(database, cfg), database.Close, nil
}

func mergeDefinition(cmd *cobra.Command, def types.SiteDefinition) error {
	dataset, err := sites.Load(mappingMerge)
	if err != nil {
		return err
	}

	replaced := sites.Upsert(dataset, def)
	if err := sites.Save(mappingMerge, dataset); err != nil {
		return err
	}

	action := "Added"
	if replaced {
		action = "Replaced"
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s in %s (%d sites)\n", action, def.ID, mappingMerge, len(dataset.Sites))
	return nil
}
