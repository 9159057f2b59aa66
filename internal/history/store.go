// Package history records generation runs and the palette references each
// run used in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	appErrors "dainty/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at  TEXT    NOT NULL,
	variant     TEXT    NOT NULL,
	accent      TEXT    NOT NULL,
	sources     TEXT    NOT NULL DEFAULT '',
	digest      TEXT    NOT NULL,
	categories  INTEGER NOT NULL,
	entries     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS usage (
	run_id  INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name    TEXT    NOT NULL,
	count   INTEGER NOT NULL,
	PRIMARY KEY (run_id, name)
);
`

// Run is one recorded generation.
type Run struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	Variant    string    `json:"variant"`
	Accent     string    `json:"accent"`
	Sources    []string  `json:"sources"`
	Digest     string    `json:"digest"`
	Categories int       `json:"categories"`
	Entries    int       `json:"searchReplace"`

	// Usage counts palette references per scale or color name.
	Usage map[string]int `json:"usage"`
}

// Store is an open history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "history path is empty", nil)
	}
	//nolint:gosec // G301: history directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, ioError("create history directory", err)
	}
	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, ioError("open history db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, ioError("ping history db", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, ioError("migrate history db", err)
	}
	return &Store{db: db, path: path}, nil
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "foreign_keys(1)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores run and its usage counts atomically and returns the new id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ioError("begin history transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (created_at, variant, accent, sources, digest, categories, entries)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Variant, run.Accent,
		strings.Join(run.Sources, "\n"), run.Digest, run.Categories, run.Entries)
	if err != nil {
		return 0, ioError("insert run", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, ioError("read run id", err)
	}

	for _, name := range slices.Sorted(maps.Keys(run.Usage)) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO usage (run_id, name, count) VALUES (?, ?, ?)`,
			id, name, run.Usage[name]); err != nil {
			return 0, ioError("insert usage", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, ioError("commit history", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return []Run{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, variant, accent, sources, digest, categories, entries
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, ioError("query runs", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
			sources   string
		)
		if err := rows.Scan(&run.ID, &createdAt, &run.Variant, &run.Accent, &sources, &run.Digest, &run.Categories, &run.Entries); err != nil {
			return nil, ioError("scan run", err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, ioError(fmt.Sprintf("parse created_at of run %d", run.ID), err)
		}
		if sources != "" {
			run.Sources = strings.Split(sources, "\n")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, ioError("iterate runs", err)
	}

	for i := range runs {
		usage, err := s.usage(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Usage = usage
	}
	return runs, nil
}

func (s *Store) usage(ctx context.Context, runID int64) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, count FROM usage WHERE run_id = ?`, runID)
	if err != nil {
		return nil, ioError("query usage", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	usage := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, ioError("scan usage", err)
		}
		usage[name] = count
	}
	return usage, rows.Err()
}

func ioError(action string, err error) error {
	return appErrors.New(appErrors.CodeIOFailed, fmt.Sprintf("%s: %v", action, err), err)
}
