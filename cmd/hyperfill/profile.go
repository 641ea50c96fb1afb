package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or clear the stored profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile as JSON",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileClear,
}

func init() {
	profileCmd.AddCommand(profileShowCmd, profileClearCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	p, err := st.LoadProfile(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		return fmt.Errorf("no profile stored; run import-profile --save first")
	}
	return printJSON(cmd.OutOrStdout(), p)
}

func runProfileClear(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.ClearProfile(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Profile cleared")
	return nil
}
