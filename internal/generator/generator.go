package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"crosstalk/internal/config"
	"crosstalk/internal/history"
	"crosstalk/internal/render"
	"crosstalk/internal/timeline"
	"crosstalk/internal/timing"
	"crosstalk/internal/wavio"
)

// lockFileName guards the output directory against concurrent runs.
const lockFileName = ".crosstalk.lock"

// Result describes one completed run. An implausible layout is a normal
// result with Timeline.Valid() == false, not an error.
type Result struct {
	RunID     string
	Timeline  *timeline.Timeline
	OutputDir string
	Outputs   []string
}

// Generator wires configuration, logging, and the optional history store into
// the generation pipeline.
type Generator struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *history.Store
	factory wavio.ReaderFactory
}

// New constructs a generator. store may be nil to disable history recording.
func New(cfg *config.Config, logger *slog.Logger, store *history.Store) (*Generator, error) {
	if cfg == nil {
		return nil, errors.New("generator requires config")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "generator")),
		store:   store,
		factory: wavio.FileReaderFactory{},
	}, nil
}

// SetReaderFactory overrides the track reader factory, primarily for tests.
func (g *Generator) SetReaderFactory(factory wavio.ReaderFactory) {
	g.factory = factory
}

// Run executes one generation attempt for the given timing file.
func (g *Generator) Run(ctx context.Context, timingPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(g.cfg.Paths.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another crosstalk run is writing to %s", g.cfg.Paths.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	turns, err := timing.Load(timingPath)
	if err != nil {
		return nil, err
	}

	tl, err := timeline.Build(turns, g.cfg.Paths.AudiotracksDir, g.factory)
	if err != nil {
		return nil, err
	}
	defer tl.Close()

	result := &Result{RunID: uuid.NewString(), Timeline: tl}
	g.logger.Info("timeline built",
		slog.String("run_id", result.RunID),
		slog.String("timing_file", timingPath),
		slog.Int("turns", len(tl.Turns())),
		slog.Int("speakers", len(tl.SpeakerNames())),
		slog.Bool("valid", tl.Valid()),
	)

	if tl.Valid() && len(tl.Turns()) > 0 {
		opts := render.Options{
			SpeakerTracks: g.cfg.Render.WriteSpeakerTracks,
			Mix:           g.cfg.Render.WriteMix,
		}
		if opts.SpeakerTracks || opts.Mix {
			result.OutputDir = filepath.Join(g.cfg.Paths.OutputDir, result.RunID)
			result.Outputs, err = render.Render(tl, result.OutputDir, opts)
			if err != nil {
				return nil, fmt.Errorf("render outputs: %w", err)
			}
			g.logger.Info("outputs written",
				slog.String("run_id", result.RunID),
				slog.String("dir", result.OutputDir),
				slog.Int("files", len(result.Outputs)),
			)
		}
	} else if !tl.Valid() {
		g.logger.Warn("timing layout rejected", slog.String("run_id", result.RunID))
	}

	if g.store != nil {
		run := &history.Run{
			ID:              result.RunID,
			TimingFile:      timingPath,
			TrackDir:        g.cfg.Paths.AudiotracksDir,
			OutputDir:       result.OutputDir,
			Valid:           tl.Valid(),
			DurationSamples: tl.TotalDurationSamples(),
			Speakers:        len(tl.SpeakerNames()),
			Turns:           len(tl.Turns()),
		}
		if err := g.store.Record(ctx, run); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}

	return result, nil
}
