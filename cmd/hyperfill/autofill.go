package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var autofillCmd = &cobra.Command{
	Use:       "autofill on|off|status",
	Short:     "Enable, disable or show automatic form filling",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off", "status"},
	RunE:      runAutofill,
}

func init() {
	rootCmd.AddCommand(autofillCmd)
}

func runAutofill(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := cmd.Context()
	switch args[0] {
	case "on":
		err = st.SetAutofillEnabled(ctx, true)
	case "off":
		err = st.SetAutofillEnabled(ctx, false)
	}
	if err != nil {
		return fmt.Errorf("failed to update autofill flag: %w", err)
	}

	enabled, err := st.AutofillEnabled(ctx)
	if err != nil {
		return fmt.Errorf("failed to read autofill flag: %w", err)
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Autofill %s\n", state)
	return nil
}
