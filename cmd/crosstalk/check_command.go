package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"crosstalk/internal/config"
	"crosstalk/internal/timeline"
	"crosstalk/internal/timing"
	"crosstalk/internal/wavio"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var tracksDir string

	cmd := &cobra.Command{
		Use:   "check <timing-file>",
		Short: "Validate a timing file against the audio track directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir := cfg.Paths.AudiotracksDir
			if strings.TrimSpace(tracksDir) != "" {
				if dir, err = config.ExpandPath(tracksDir); err != nil {
					return err
				}
			}

			turns, err := timing.Load(args[0])
			if err != nil {
				return err
			}

			tl, err := timeline.Build(turns, dir, wavio.FileReaderFactory{})
			if err != nil {
				return err
			}
			defer tl.Close()

			out := cmd.OutOrStdout()
			if len(tl.Turns()) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Speaker", "Track", "Offset", "Begin", "End", "Duration"},
					placementRows(tl),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
			}

			fmt.Fprintf(out, "Turns: %d  Speakers: %d  Sample rate: %d Hz\n",
				len(tl.Turns()), len(tl.SpeakerNames()), tl.SampleRate())
			if !tl.Valid() {
				return fmt.Errorf("timing layout is not plausible")
			}
			fmt.Fprintf(out, "Layout valid, total duration %s (%d samples)\n",
				formatSamples(tl.TotalDurationSamples(), tl.SampleRate()), tl.TotalDurationSamples())
			return nil
		},
	}

	cmd.Flags().StringVar(&tracksDir, "tracks", "", "Audio track directory (defaults to the configured one)")
	return cmd
}

func placementRows(tl *timeline.Timeline) [][]string {
	rows := make([][]string, 0, len(tl.Turns()))
	for i, turn := range tl.Turns() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			turn.Turn.Speaker,
			turn.Turn.Track,
			formatOffset(turn.Turn.Offset),
			strconv.FormatInt(turn.Begin, 10),
			strconv.FormatInt(turn.End, 10),
			formatSamples(turn.Duration(), tl.SampleRate()),
		})
	}
	return rows
}
