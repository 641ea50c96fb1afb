package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperfill/formfill/internal/sites"
)

var (
	extractInput string
	extractLimit int
)

var extractURLsCmd = &cobra.Command{
	Use:   "extract-urls",
	Short: "List the http(s) URLs found in a text file",
	Long:  "Prints each distinct URL once, in order of first appearance, up to --limit URLs. Reads stdin when --in is omitted.",
	Args:  cobra.NoArgs,
	RunE:  runExtractURLs,
}

func init() {
	extractURLsCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Text file to scan (default stdin)")
	extractURLsCmd.Flags().IntVar(&extractLimit, "limit", sites.MaxBulkURLs, "Maximum number of URLs")

	rootCmd.AddCommand(extractURLsCmd)
}

func runExtractURLs(cmd *cobra.Command, _ []string) error {
	var (
		data []byte
		err  error
	)
	if extractInput == "" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(extractInput)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	for _, u := range sites.ExtractURLs(string(data), extractLimit) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), u)
	}
	return nil
}
