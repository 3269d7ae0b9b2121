package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"crosstalk/internal/config"
	"crosstalk/internal/wavio"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks [dir]",
		Short: "List the audio tracks available to timing files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir := cfg.Paths.AudiotracksDir
			if len(args) == 1 {
				if dir, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("read track directory: %w", err)
			}

			factory := wavio.FileReaderFactory{}
			var rows [][]string
			for _, entry := range entries {
				if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
					continue
				}
				rows = append(rows, trackRow(factory, dir, entry.Name()))
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })

			out := cmd.OutOrStdout()
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Track", "Rate", "Channels", "Samples", "Duration"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
			}
			fmt.Fprintf(out, "%d track(s) in %s\n", len(rows), dir)
			return nil
		},
	}
}

func trackRow(factory wavio.FileReaderFactory, dir, name string) []string {
	reader, err := factory.Create(filepath.Join(dir, name))
	if err != nil {
		return []string{name, "-", "-", "-", fmt.Sprintf("unreadable: %v", err)}
	}
	defer reader.Close()

	return []string{
		name,
		strconv.Itoa(reader.SampleRate()),
		strconv.Itoa(reader.NumChannels()),
		strconv.Itoa(reader.NumSamples()),
		formatSamples(int64(reader.NumSamples()), reader.SampleRate()),
	}
}
