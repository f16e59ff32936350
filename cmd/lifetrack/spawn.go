package main

import (
	"fmt"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
	"lifetrack/internal/app"

	"github.com/spf13/cobra"
)

var spawnTimeout int

func init() {
	rootCmd.AddCommand(cmdSpawn)
	cmdSpawn.Flags().IntVar(&spawnTimeout, "timeout", 3, "Timeout in seconds for contacting the daemon")
}

var cmdSpawn = &cobra.Command{
	Use:   "spawn <class> <name>",
	Short: "Create an object in the daemon's heap",
	Long:  "Creates an object of the given class. Trackers are notified immediately, so a matching object is tracked before this command returns.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := controller().Spawn(cmd.Context(), app.SpawnParams{
			Class:   args[0],
			Name:    args[1],
			Timeout: seconds(spawnTimeout),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Spawned handle=%s slot=%d\n", lifetrackv1.FormatHandle(res.Handle), res.Slot)
		return nil
	},
}
