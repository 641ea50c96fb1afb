package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hyperfill/formfill/internal/observability"
	"github.com/hyperfill/formfill/internal/profile"
	"github.com/hyperfill/formfill/internal/types"
)

var (
	importInput string
	importOut   string
	importSave  bool
)

var importProfileCmd = &cobra.Command{
	Use:   "import-profile",
	Short: "Import a contact profile from a CSV or spreadsheet export",
	Long: "Reads the first non-blank row of a .csv or .xlsx file, maps its headers onto profile fields " +
		"and prints the profile as JSON. Unrecognized columns are ignored.",
	RunE: runImportProfile,
}

func init() {
	importProfileCmd.Flags().StringVarP(&importInput, "in", "i", "", "Path to the .csv or .xlsx file (required)")
	importProfileCmd.Flags().StringVarP(&importOut, "out", "o", "", "Write the profile JSON to this file instead of stdout")
	importProfileCmd.Flags().BoolVar(&importSave, "save", false, "Store the profile in the local store")

	if err := importProfileCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(importProfileCmd)
}

func runImportProfile(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(importInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	p, err := profile.ImportFile(filepath.Base(importInput), data)
	if err != nil {
		return err
	}
	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintProfile(p)
	}

	if importSave {
		if err := saveProfile(cmd.Context(), p); err != nil {
			return err
		}
	}

	if importOut == "" {
		return printJSON(cmd.OutOrStdout(), p)
	}

	f, err := os.Create(importOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := printJSON(f, p); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote profile to %s\n", importOut)
	return nil
}

func saveProfile(ctx context.Context, p *types.Profile) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if appConfig.Verbose {
		log.Printf("[IMPORT] Saved profile to %s", appConfig.StorePath)
	}
	return nil
}
