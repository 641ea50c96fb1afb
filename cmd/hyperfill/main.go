// Package main provides the hyperfill CLI: profile import, form mapping generation and site dataset management.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hyperfill/formfill/internal/config"
)

var (
	configPath string
	storePath  string
	verbose    bool

	// appConfig is resolved before every command runs
	appConfig = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:   "hyperfill",
	Short: "Profile import and form mapping for signup autofill",
	Long: "hyperfill imports a contact profile from CSV or spreadsheet exports, infers which form control " +
		"holds which profile field, and maintains the site-mapping dataset used to fill forms.",
	SilenceUsage:      true,
	PersistentPreRunE: resolveConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the local store database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func resolveConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	cfg.Verbose = cfg.Verbose || verbose
	appConfig = *cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
