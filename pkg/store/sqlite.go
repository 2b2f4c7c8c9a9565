package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

var ErrNotFound = errors.New("store: run not found")

// Run is one stored analysis: its description and result columns.
type Run struct {
	ID        int64
	Title     string
	Model     string
	Analysis  string
	Params    map[string]float64
	CreatedAt time.Time
	Columns   []string             // result names in display order
	Results   map[string][]float64 // empty when listed
}

type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: path}, nil
}

func (s *Store) Path() string {
	return s.dbPath
}

// SaveRun stores a run with its results and returns the new run ID.
func (s *Store) SaveRun(ctx context.Context, run *Run) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	params, err := json.Marshal(run.Params)
	if err != nil {
		return 0, fmt.Errorf("failed to encode params: %w", err)
	}
	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (title, model, analysis, params, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.Title, run.Model, run.Analysis, string(params), created.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for i, name := range columns(run) {
		vals, err := json.Marshal(run.Results[name])
		if err != nil {
			return 0, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO results (run_id, position, name, vals) VALUES (?, ?, ?, ?)`,
			id, i, name, string(vals))
		if err != nil {
			return 0, fmt.Errorf("failed to insert %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = id
	run.CreatedAt = created
	return id, nil
}

// columns returns run.Columns followed by any result not listed there.
func columns(run *Run) []string {
	seen := make(map[string]bool, len(run.Results))
	out := make([]string, 0, len(run.Results))
	for _, name := range run.Columns {
		if _, ok := run.Results[name]; ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range sortedKeys(run.Results) {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}

func (s *Store) scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var (
		run     Run
		params  string
		created string
	)
	if err := row.Scan(&run.ID, &run.Title, &run.Model, &run.Analysis, &params, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
		return nil, fmt.Errorf("run %d: failed to decode params: %w", run.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("run %d: bad timestamp: %w", run.ID, err)
	}
	run.CreatedAt = t
	return &run, nil
}

// LoadRun returns a run with all its results.
func (s *Store) LoadRun(ctx context.Context, id int64) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, model, analysis, params, created_at FROM runs WHERE id = ?`, id)
	run, err := s.scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, vals FROM results WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load results of run %d: %w", id, err)
	}
	defer rows.Close()

	run.Results = make(map[string][]float64)
	for rows.Next() {
		var name, vals string
		if err := rows.Scan(&name, &vals); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		var v []float64
		if err := json.Unmarshal([]byte(vals), &v); err != nil {
			return nil, fmt.Errorf("run %d: failed to decode %s: %w", id, name, err)
		}
		run.Columns = append(run.Columns, name)
		run.Results[name] = v
	}
	return run, rows.Err()
}

// ListRuns returns all runs, newest first, without their results.
func (s *Store) ListRuns(ctx context.Context) ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, model, analysis, params, created_at FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run, err := s.scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its results.
func (s *Store) DeleteRun(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
