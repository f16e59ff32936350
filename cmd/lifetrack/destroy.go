package main

import (
	"fmt"

	"lifetrack/internal/app"

	"github.com/spf13/cobra"
)

var (
	destroyNoNotify bool
	destroyTimeout  int
)

func init() {
	rootCmd.AddCommand(cmdDestroy)
	cmdDestroy.Flags().BoolVar(&destroyNoNotify, "no-notify", false, "Only flag the object as destroying; skip the delete notification")
	cmdDestroy.Flags().IntVar(&destroyTimeout, "timeout", 3, "Timeout in seconds for contacting the daemon")
}

var cmdDestroy = &cobra.Command{
	Use:   "destroy <handle>",
	Short: "Destroy an object in the daemon's heap",
	Long:  "Destroys the object and delivers a delete notification. With --no-notify the object is only flagged, which simulates a missed notification.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := app.ParseHandle(args[0])
		if err != nil {
			return err
		}
		err = controller().Destroy(cmd.Context(), app.DestroyParams{
			Handle:   h,
			NoNotify: destroyNoNotify,
			Timeout:  seconds(destroyTimeout),
		})
		if err != nil {
			return err
		}
		if destroyNoNotify {
			fmt.Fprintf(cmd.OutOrStdout(), "Flagged %s as destroying\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Destroyed %s\n", args[0])
		}
		return nil
	},
}
