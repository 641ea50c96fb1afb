package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	dir     string
	store   string
	dataset string
}

// newCLIEnv points the store and dataset at a temp dir and clears settings that would reach the network.
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := &cliEnv{
		dir:     dir,
		store:   filepath.Join(dir, "hyperfill.db"),
		dataset: filepath.Join(dir, "site_mappings.json"),
	}
	t.Setenv("HYPERFILL_STORE_PATH", env.store)
	t.Setenv("HYPERFILL_DATASET_PATH", env.dataset)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("HYPERFILL_USE_BROWSER", "")
	t.Setenv("HYPERFILL_DEFAULT_CATEGORY", "")
	t.Setenv("HYPERFILL_DEFAULT_SPAM_SCORE", "")
	t.Setenv("HYPERFILL_DEFAULT_URL_PATTERN", "")
	return env
}

func (e *cliEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// runCLI executes the root command in-process and returns what it wrote to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag of cmd and its subcommands to its default so
// rootCmd can be executed repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
