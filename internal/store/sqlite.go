package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/prathamdarmwal/ragscope/internal/harness"
)

const defaultHistoryLimit = 50

// ErrNotFound is returned when a comparison id does not exist.
var ErrNotFound = errors.New("store: comparison not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite store at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: empty sqlite path")
	}
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS comparisons (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			results_json TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_created_at ON comparisons(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) SaveComparison(ctx context.Context, record *harness.ExportRecord) (int64, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("store: nil sqlite store")
	}
	if record == nil {
		return 0, errors.New("store: nil record")
	}

	resultsJSON, err := json.Marshal(record.Results)
	if err != nil {
		return 0, fmt.Errorf("store: marshal results: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO comparisons (query, results_json, timestamp, created_at)
		VALUES (?, ?, ?, ?)
	`, record.Query, string(resultsJSON), record.Timestamp, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("store: insert comparison: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) GetComparison(ctx context.Context, id int64) (*Comparison, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: nil sqlite store")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, query, results_json, timestamp, created_at
		FROM comparisons WHERE id = ?
	`, id)

	c, err := scanComparison(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: comparison %d: %w", id, ErrNotFound)
	}
	return c, err
}

func (s *SQLiteStore) ListComparisons(ctx context.Context, limit int) ([]*Comparison, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store: nil sqlite store")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, results_json, timestamp, created_at
		FROM comparisons ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list comparisons: %w", err)
	}
	defer rows.Close()

	var out []*Comparison
	for rows.Next() {
		c, err := scanComparison(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list comparisons: %w", err)
	}
	return out, nil
}

func scanComparison(scan func(dest ...any) error) (*Comparison, error) {
	var (
		c           Comparison
		resultsJSON string
		createdAt   int64
	)
	if err := scan(&c.ID, &c.Query, &resultsJSON, &c.Timestamp, &createdAt); err != nil {
		return nil, err
	}

	var rs harness.ResultSet
	if err := json.Unmarshal([]byte(resultsJSON), &rs); err != nil {
		return nil, fmt.Errorf("store: parse results for %d: %w", c.ID, err)
	}
	c.Results = &rs
	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &c, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
