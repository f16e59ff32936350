package main

import (
	"fmt"
	"strings"

	"lifetrack/internal/app"

	"github.com/spf13/cobra"
)

var (
	resetConfirm string
	resetTimeout int
)

func init() {
	rootCmd.AddCommand(cmdReset)
	cmdReset.Flags().StringVar(&resetConfirm, "confirm", "", `Type "RESET" to acknowledge dropping all records and rules`)
	cmdReset.Flags().IntVar(&resetTimeout, "timeout", 5, "Timeout in seconds for reset RPC")
}

var cmdReset = &cobra.Command{
	Use:   "reset",
	Short: "Drop every tracked record and tracking rule",
	Long:  "Clears the tracker: all records plus registered types and names. The configured root type and reserved name keep applying. Requires --confirm RESET.",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := controller().Reset(cmd.Context(), app.ResetParams{
			Timeout:   seconds(resetTimeout),
			Confirmed: strings.TrimSpace(resetConfirm) == "RESET",
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Tracker cleared")
		return nil
	},
}
