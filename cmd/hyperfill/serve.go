package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperfill/formfill/internal/server"
)

var (
	servePort        int
	serveDatabaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server for profile import and form mapping.

The server exposes:
  GET  /health             - Health check
  POST /profiles/import    - Import a profile from CSV text or rows
  GET  /profiles/{id}      - Get a stored profile
  POST /mappings/generate  - Map form controls to profile fields
  GET  /sites              - List stored site definitions
  POST /sites              - Generate and store a site definition`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "database-url", "", "PostgreSQL connection URL (default DATABASE_URL)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := server.Config{
		Port:         appConfig.Port,
		DatabaseURL:  appConfig.DatabaseURL,
		FetchTimeout: time.Duration(appConfig.FetchTimeout) * time.Second,
		UseBrowser:   appConfig.UseBrowser,
		Verbose:      appConfig.Verbose,
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveDatabaseURL != "" {
		cfg.DatabaseURL = serveDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required to serve")
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
