// Package store keeps a SQLite journal of processed requests.
//
// The schema is created on open. sql.DB pools the connections, so a
// Journal may be shared between goroutines.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/njchilds90/mathsolve"
)

// ErrNotFound is returned by Get for an unknown entry.
var ErrNotFound = errors.New("journal entry not found")

// Entry is one journaled request.
type Entry struct {
	ID          uuid.UUID
	Input       string
	Normalized  string
	Category    mathsolve.Category
	Result      string
	Markup      string
	Success     bool
	Error       string
	Diagnostics []string
	CreatedAt   time.Time
	Duration    time.Duration
}

// Journal records SessionTraces in SQLite.
type Journal struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens or creates the journal database at path, creating parent
// directories as needed.
func Open(path string, logger *zap.Logger) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	return newJournal(db, logger)
}

// NewInMemory returns a journal that lives as long as the value.
func NewInMemory(logger *zap.Logger) (*Journal, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newJournal(db, logger)
}

func newJournal(db *sql.DB, logger *zap.Logger) (*Journal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &Journal{db: db, logger: logger}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return j, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS requests (
			id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			normalized TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			result TEXT NOT NULL DEFAULT '',
			markup TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			diagnostics TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_requests_created
		ON requests(created_at DESC);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Record stores tr.
func (j *Journal) Record(ctx context.Context, tr *mathsolve.SessionTrace) error {
	e := Entry{
		ID:          tr.ID,
		Input:       tr.Input,
		Category:    tr.Category,
		Success:     tr.Success,
		Diagnostics: tr.Diagnostics(),
		CreatedAt:   tr.Started,
		Duration:    tr.Duration,
	}
	if p := tr.Parse(); p != nil {
		e.Normalized = p.Normalized
	}
	if tr.Output != nil {
		e.Result, e.Markup = tr.Output.Numeric, tr.Output.Markup
	}
	if tr.Err != nil {
		e.Error = tr.Err.Error()
	}
	return j.insert(ctx, e)
}

func (j *Journal) insert(ctx context.Context, e Entry) error {
	diags := e.Diagnostics
	if diags == nil {
		diags = []string{}
	}
	raw, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}
	_, err = j.db.ExecContext(ctx, `
		INSERT INTO requests (id, input, normalized, category, result, markup, success, error, diagnostics, created_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.Input, e.Normalized, string(e.Category), e.Result, e.Markup,
		e.Success, e.Error, string(raw), e.CreatedAt.UnixNano(), int64(e.Duration),
	)
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	j.logger.Debug("journaled", zap.String("id", e.ID.String()), zap.String("category", string(e.Category)))
	return nil
}

const selectEntry = `SELECT id, input, normalized, category, result, markup, success, error, diagnostics, created_at, duration_ns FROM requests`

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx, selectEntry+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return out, nil
}

// Get returns the entry with id.
func (j *Journal) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	row := j.db.QueryRowContext(ctx, selectEntry+` WHERE id = ?`, id.String())
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// Count returns the number of journaled requests.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e                  Entry
		id, category, diag string
		created, duration  int64
	)
	err := s.Scan(&id, &e.Input, &e.Normalized, &category, &e.Result, &e.Markup, &e.Success, &e.Error, &diag, &created, &duration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("failed to scan journal entry: %w", err)
	}
	if e.ID, err = uuid.Parse(id); err != nil {
		return Entry{}, fmt.Errorf("bad journal id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(diag), &e.Diagnostics); err != nil {
		return Entry{}, fmt.Errorf("bad diagnostics for %s: %w", id, err)
	}
	e.Category = mathsolve.Category(category)
	e.CreatedAt = time.Unix(0, created)
	e.Duration = time.Duration(duration)
	return e, nil
}
