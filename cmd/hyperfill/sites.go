package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperfill/formfill/internal/sites"
	"github.com/hyperfill/formfill/internal/types"
)

var (
	sitesExportOut string
	sitesImportAdd bool
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Manage the site-mapping dataset",
	Long: "The stored site mappings override the bundled dataset file while they are non-empty. " +
		"import replaces the stored mappings, reset removes them.",
}

var sitesCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of sites in the effective dataset",
	Args:  cobra.NoArgs,
	RunE:  runSitesCount,
}

var sitesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the effective dataset as JSON",
	Args:  cobra.NoArgs,
	RunE:  runSitesExport,
}

var sitesImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Store site mappings from a dataset file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitesImport,
}

var sitesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the stored site mappings",
	Args:  cobra.NoArgs,
	RunE:  runSitesReset,
}

func init() {
	sitesExportCmd.Flags().StringVarP(&sitesExportOut, "out", "o", "", "Write the dataset to this file instead of stdout")
	sitesImportCmd.Flags().BoolVar(&sitesImportAdd, "merge", false, "Upsert into the stored mappings instead of replacing them")

	sitesCmd.AddCommand(sitesCountCmd, sitesExportCmd, sitesImportCmd, sitesResetCmd)
	rootCmd.AddCommand(sitesCmd)
}

func runSitesCount(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	defs, source, err := effectiveSites(cmd.Context(), st)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d sites (%s)\n", len(defs), source)
	return nil
}

func runSitesExport(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	defs, _, err := effectiveSites(cmd.Context(), st)
	if err != nil {
		return err
	}

	data, err := sites.Export(&types.SiteDataset{Sites: defs})
	if err != nil {
		return err
	}

	if sitesExportOut == "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}
	if err := os.WriteFile(sitesExportOut, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sites to %s\n", len(defs), sitesExportOut)
	return nil
}

func runSitesImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	incoming, err := sites.Parse(data)
	if err != nil {
		return err
	}
	if err := sites.Validate(incoming); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := cmd.Context()
	stored := incoming
	if sitesImportAdd {
		current, err := st.SiteMappings(ctx)
		if err != nil {
			return err
		}
		stored = &types.SiteDataset{Sites: current}
		for _, def := range incoming.Sites {
			sites.Upsert(stored, def)
		}
	}

	if err := st.SetSiteMappings(ctx, stored.Sites); err != nil {
		return fmt.Errorf("failed to store site mappings: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored %d sites\n", len(stored.Sites))
	return nil
}

func runSitesReset(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.ResetSiteMappings(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset site mappings: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stored site mappings removed")
	return nil
}
