package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var listTimeout int

func init() {
	rootCmd.AddCommand(cmdList)
	cmdList.Flags().IntVar(&listTimeout, "timeout", 2, "Timeout in seconds for contacting the daemon")
}

var cmdList = &cobra.Command{
	Use:   "list",
	Short: "List every object the daemon is tracking",
	RunE: func(cmd *cobra.Command, args []string) error {
		objs, err := controller().List(cmd.Context(), seconds(listTimeout))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(objs) == 0 {
			fmt.Fprintln(out, "No objects tracked")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "HANDLE\tSLOT\tNAME\tFLAGS\tTRACKED")
		for _, obj := range objs {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
				obj.HandleString(), obj.Slot, obj.Name, obj.Flags, obj.TrackedAt.Format(time.RFC3339))
		}
		return tw.Flush()
	},
}
