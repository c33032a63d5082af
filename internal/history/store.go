package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"perch/internal/config"
	"perch/internal/organize"
)

// ErrNotFound indicates the requested run does not exist.
var ErrNotFound = errors.New("run not found")

// Run is the stored summary of one past run.
type Run struct {
	ID          string
	Kind        string
	Source      string
	Destination string
	StartedAt   time.Time
	FinishedAt  time.Time
	Counts      map[organize.Outcome]int
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun persists a run report with all of its entries in one transaction.
func (s *Store) RecordRun(ctx context.Context, result *organize.Result, source, destination string) error {
	counts, err := json.Marshal(result.Counts)
	if err != nil {
		return fmt.Errorf("marshal counts: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, kind, source, destination, started_at, finished_at, counts)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.Kind,
		source,
		destination,
		result.StartedAt.Format(time.RFC3339Nano),
		result.FinishedAt.Format(time.RFC3339Nano),
		string(counts),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for seq, entry := range result.Entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_entries (run_id, seq, outcome, source, destination, detail)
             VALUES (?, ?, ?, ?, ?, ?)`,
			result.RunID, seq, string(entry.Outcome), entry.Source, entry.Destination, entry.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, kind, source, destination, started_at, finished_at, counts
              FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, source, destination, started_at, finished_at, counts
         FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &run, nil
}

// EntriesForRun returns a run's per-item entries in recorded order.
func (s *Store) EntriesForRun(ctx context.Context, id string) ([]organize.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT outcome, source, destination, detail
         FROM run_entries WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []organize.Entry
	for rows.Next() {
		var entry organize.Entry
		var outcome string
		if err := rows.Scan(&outcome, &entry.Source, &entry.Destination, &entry.Detail); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.Outcome = organize.Outcome(outcome)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune deletes runs that started before now minus retention and returns how
// many were removed. Entries cascade.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var started, finished, counts string
	if err := row.Scan(&run.ID, &run.Kind, &run.Source, &run.Destination, &started, &finished, &counts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	if err := json.Unmarshal([]byte(counts), &run.Counts); err != nil {
		return Run{}, fmt.Errorf("parse counts: %w", err)
	}
	return run, nil
}
