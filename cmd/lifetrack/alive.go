package main

import (
	"fmt"

	"lifetrack/internal/app"

	"github.com/spf13/cobra"
)

var aliveTimeout int

func init() {
	rootCmd.AddCommand(cmdAlive)
	cmdAlive.Flags().IntVar(&aliveTimeout, "timeout", 2, "Timeout in seconds for contacting the daemon")
}

var cmdAlive = &cobra.Command{
	Use:   "alive <handle>",
	Short: "Report whether a tracked handle is still alive",
	Long:  "Prints true when the handle is tracked and its object has not begun destruction. Querying a destroying object evicts it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := app.ParseHandle(args[0])
		if err != nil {
			return err
		}
		alive, err := controller().IsAlive(cmd.Context(), h, seconds(aliveTimeout))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), alive)
		return nil
	},
}
