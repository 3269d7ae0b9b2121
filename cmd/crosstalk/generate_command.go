package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crosstalk/internal/generator"
	"crosstalk/internal/logging"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <timing-file>",
		Short: "Build a timeline and write the conversation audio files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			if store != nil {
				defer store.Close()
			}

			gen, err := generator.New(cfg, logger, store)
			if err != nil {
				return err
			}

			result, err := gen.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tl := result.Timeline
			fmt.Fprintf(out, "Run %s\n", result.RunID)
			fmt.Fprintf(out, "Valid: %s\n", yesNo(tl.Valid()))
			if !tl.Valid() {
				return fmt.Errorf("timing layout is not plausible; nothing was written")
			}

			fmt.Fprintf(out, "Duration: %s (%d samples at %d Hz)\n",
				formatSamples(tl.TotalDurationSamples(), tl.SampleRate()),
				tl.TotalDurationSamples(), tl.SampleRate())
			if len(result.Outputs) > 0 {
				fmt.Fprintf(out, "Wrote %d file(s) to %s\n", len(result.Outputs), result.OutputDir)
				for _, path := range result.Outputs {
					fmt.Fprintf(out, "  %s\n", path)
				}
			}
			return nil
		},
	}
}
