package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded generation attempt. DurationSamples is meaningful only
// when Valid is true.
type Run struct {
	ID              string
	TimingFile      string
	TrackDir        string
	OutputDir       string
	Valid           bool
	DurationSamples int64
	Speakers        int
	Turns           int
	CreatedAt       time.Time
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    timing_file TEXT NOT NULL,
    track_dir TEXT NOT NULL,
    output_dir TEXT,
    valid INTEGER NOT NULL,
    duration_samples INTEGER NOT NULL,
    speakers INTEGER NOT NULL,
    turns INTEGER NOT NULL,
    created_at TEXT NOT NULL
)`

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a run. A zero CreatedAt is filled with the current time.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, timing_file, track_dir, output_dir, valid,
            duration_samples, speakers, turns, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.TimingFile,
		run.TrackDir,
		nullableString(run.OutputDir),
		boolToInt(run.Valid),
		run.DurationSamples,
		run.Speakers,
		run.Turns,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. A limit <= 0 returns all
// runs.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, timing_file, track_dir, output_dir, valid,
        duration_samples, speakers, turns, created_at
        FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Clear removes all recorded runs and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run        Run
		outputDir  sql.NullString
		valid      int
		createdRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.TimingFile,
		&run.TrackDir,
		&outputDir,
		&valid,
		&run.DurationSamples,
		&run.Speakers,
		&run.Turns,
		&createdRaw,
	); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.OutputDir = outputDir.String
	run.Valid = valid != 0
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		run.CreatedAt = created
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
