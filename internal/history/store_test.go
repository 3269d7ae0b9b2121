package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []*Run{
		{ID: "run-1", TimingFile: "/t/one.txt", TrackDir: "/tracks", OutputDir: "/out/1", Valid: true, DurationSamples: 48000, Speakers: 2, Turns: 2, CreatedAt: base},
		{ID: "run-2", TimingFile: "/t/two.txt", TrackDir: "/tracks", Valid: false, Speakers: 3, Turns: 5, CreatedAt: base.Add(time.Minute)},
	}
	for _, run := range runs {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("record %s: %v", run.ID, err)
		}
	}

	listed, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(listed))
	}
	if listed[0].ID != "run-2" || listed[1].ID != "run-1" {
		t.Fatalf("expected newest first, got %s, %s", listed[0].ID, listed[1].ID)
	}

	got := listed[1]
	if !got.Valid || got.DurationSamples != 48000 || got.Speakers != 2 || got.Turns != 2 {
		t.Fatalf("unexpected run fields: %+v", got)
	}
	if got.OutputDir != "/out/1" {
		t.Fatalf("unexpected output dir: %q", got.OutputDir)
	}
	if !got.CreatedAt.Equal(base) {
		t.Fatalf("unexpected created at: %v", got.CreatedAt)
	}
	if listed[0].OutputDir != "" {
		t.Fatalf("expected empty output dir for invalid run, got %q", listed[0].OutputDir)
	}
}

func TestListLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := &Run{ID: string(rune('a' + i)), TimingFile: "/t", TrackDir: "/d", CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	listed, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != "e" {
		t.Fatalf("unexpected limited list: %+v", listed)
	}
}

func TestClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, &Run{ID: "run-1", TimingFile: "/t", TrackDir: "/d"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	listed, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty history, got %d runs", len(listed))
	}
}

func TestRecordFillsCreatedAt(t *testing.T) {
	store := openStore(t)
	run := &Run{ID: "run-1", TimingFile: "/t", TrackDir: "/d"}
	if err := store.Record(context.Background(), run); err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be filled")
	}
}
