package main

import (
	"fmt"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
	"lifetrack/internal/app"

	"github.com/spf13/cobra"
)

var trackTimeout int

func init() {
	rootCmd.AddCommand(cmdTrack, cmdUntrack)
	for _, c := range []*cobra.Command{cmdTrack, cmdUntrack} {
		c.PersistentFlags().IntVar(&trackTimeout, "timeout", 3, "Timeout in seconds for contacting the daemon")
	}

	cmdTrack.AddCommand(
		trackRuleCmd(lifetrackv1.KindType, "Track every future object of a class or its subclasses", true),
		trackRuleCmd(lifetrackv1.KindName, "Track every future object whose name contains the pattern", true),
	)
	cmdUntrack.AddCommand(
		trackRuleCmd(lifetrackv1.KindType, "Stop tracking new objects of a class", false),
		trackRuleCmd(lifetrackv1.KindName, "Stop tracking new objects by name pattern", false),
	)
}

var cmdTrack = &cobra.Command{
	Use:   "track",
	Short: "Add a tracking rule",
	Long:  "Rules apply to objects created afterwards. Objects that already exist are not scanned.",
}

var cmdUntrack = &cobra.Command{
	Use:   "untrack",
	Short: "Remove a tracking rule",
	Long:  "Removing a rule does not evict records that were already tracked.",
}

func trackRuleCmd(kind, short string, add bool) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <pattern>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := app.TrackParams{Kind: kind, Pattern: args[0], Timeout: seconds(trackTimeout)}
			ctrl := controller()
			verb := "Tracking"
			var err error
			if add {
				err = ctrl.Track(cmd.Context(), params)
			} else {
				verb = "No longer tracking"
				err = ctrl.Untrack(cmd.Context(), params)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q\n", verb, kind, args[0])
			return nil
		},
	}
}
