package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crosstalk/internal/timing"
)

func newTimingCommand(ctx *commandContext) *cobra.Command {
	timingCmd := &cobra.Command{
		Use:         "timing",
		Short:       "Timing file utilities",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	timingCmd.AddCommand(newTimingShowCommand())
	return timingCmd
}

func newTimingShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <timing-file>",
		Short: "Print the turns in a timing file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			turns, err := timing.Load(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(turns))
			for i, turn := range turns {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					turn.Speaker,
					turn.Track,
					formatOffset(turn.Offset),
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Speaker", "Track", "Offset"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
				))
			}
			fmt.Fprintf(out, "%d turn(s)\n", len(turns))
			return nil
		},
	}
}
