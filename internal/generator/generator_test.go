package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"crosstalk/internal/config"
	"crosstalk/internal/history"
	"crosstalk/internal/logging"
	"crosstalk/internal/timing"
	"crosstalk/internal/wavio"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.AudiotracksDir = filepath.Join(base, "tracks")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.History.Path = filepath.Join(base, "history.db")
	if err := os.MkdirAll(cfg.Paths.AudiotracksDir, 0o755); err != nil {
		t.Fatalf("mkdir tracks: %v", err)
	}
	return &cfg
}

func writeTone(t *testing.T, path string, numSamples int) {
	t.Helper()
	writer, err := wavio.NewWriter(path, 8000, 1)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	samples := make([]int16, numSamples)
	for i := range samples {
		samples[i] = 500
	}
	if err := writer.WriteInt16(samples); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func writeTiming(t *testing.T, dir string, turns []timing.Turn) string {
	t.Helper()
	path := filepath.Join(dir, "timing.txt")
	if err := timing.Save(path, turns); err != nil {
		t.Fatalf("save timing: %v", err)
	}
	return path
}

func newGenerator(t *testing.T, cfg *config.Config) (*Generator, *history.Store) {
	t.Helper()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	gen, err := New(cfg, logging.NewNop(), store)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return gen, store
}

func TestRunValidLayout(t *testing.T) {
	cfg := testConfig(t)
	writeTone(t, filepath.Join(cfg.Paths.AudiotracksDir, "hello.wav"), 400)
	timingPath := writeTiming(t, t.TempDir(), []timing.Turn{
		{Speaker: "A", Track: "hello.wav", Offset: 0},
		{Speaker: "B", Track: "hello.wav", Offset: 0},
	})

	gen, store := newGenerator(t, cfg)
	result, err := gen.Run(context.Background(), timingPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Timeline.Valid() {
		t.Fatal("expected valid timeline")
	}
	if result.Timeline.TotalDurationSamples() != 800 {
		t.Fatalf("unexpected duration %d", result.Timeline.TotalDurationSamples())
	}
	// Two speaker tracks plus the mix.
	if len(result.Outputs) != 3 {
		t.Fatalf("expected 3 outputs, got %v", result.Outputs)
	}
	for _, path := range result.Outputs {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing output %s: %v", path, err)
		}
	}

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != result.RunID || !runs[0].Valid {
		t.Fatalf("unexpected history: %+v", runs)
	}
}

func TestRunInvalidLayoutIsNotAnError(t *testing.T) {
	cfg := testConfig(t)
	writeTone(t, filepath.Join(cfg.Paths.AudiotracksDir, "hello.wav"), 400)
	timingPath := writeTiming(t, t.TempDir(), []timing.Turn{
		{Speaker: "A", Track: "hello.wav", Offset: -100},
		{Speaker: "B", Track: "hello.wav", Offset: 0},
	})

	gen, store := newGenerator(t, cfg)
	result, err := gen.Run(context.Background(), timingPath)
	if err != nil {
		t.Fatalf("run should not fail on invalid layout: %v", err)
	}
	if result.Timeline.Valid() {
		t.Fatal("expected invalid timeline")
	}
	if len(result.Outputs) != 0 || result.OutputDir != "" {
		t.Fatalf("expected no outputs, got %+v", result)
	}

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(runs) != 1 || runs[0].Valid {
		t.Fatalf("expected one invalid run recorded, got %+v", runs)
	}
}

func TestRunMissingTrackFails(t *testing.T) {
	cfg := testConfig(t)
	timingPath := writeTiming(t, t.TempDir(), []timing.Turn{
		{Speaker: "A", Track: "absent.wav", Offset: 0},
	})

	gen, _ := newGenerator(t, cfg)
	if _, err := gen.Run(context.Background(), timingPath); err == nil {
		t.Fatal("expected error for missing track")
	}
}

func TestRunMissingTimingFileFails(t *testing.T) {
	cfg := testConfig(t)
	gen, _ := newGenerator(t, cfg)
	if _, err := gen.Run(context.Background(), filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing timing file")
	}
}

func TestRunWithoutHistoryStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Render.WriteSpeakerTracks = false
	cfg.Render.WriteMix = false
	writeTone(t, filepath.Join(cfg.Paths.AudiotracksDir, "hello.wav"), 100)
	timingPath := writeTiming(t, t.TempDir(), []timing.Turn{
		{Speaker: "A", Track: "hello.wav", Offset: 0},
	})

	gen, err := New(cfg, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	result, err := gen.Run(context.Background(), timingPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Outputs) != 0 {
		t.Fatalf("expected no outputs with rendering disabled, got %v", result.Outputs)
	}
}
