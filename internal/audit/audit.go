// Package audit keeps a SQLite-backed trail of technician override
// changes. Entries are append-only; the dashboard exposes the most
// recent ones for troubleshooting surprising category or status values.
package audit

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/kitboardapp/kitboard-server/internal/id"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Kinds of recorded changes.
const (
	KindCategoryOverride = "category_override"
	KindStatusOverride   = "status_override"
	KindCuratedLists     = "curated_lists"
)

// Entry is one recorded override change.
type Entry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

// Log provides SQLite-backed persistence for override audit entries.
type Log struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates the audit log at the given path. It configures WAL mode,
// sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	if logger != nil {
		logger.Debug("audit log opened", "path", path)
	}

	return &Log{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// entryColumns is the ordered list of columns selected in audit queries.
// Must match the scan order in scanEntry.
const entryColumns = `id, kind, key, value, created_at`

// scanEntry scans a sql.Row (or sql.Rows via its Scan method) into an Entry.
func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		e         Entry
		createdAt string
	)

	if err := scanner.Scan(&e.ID, &e.Kind, &e.Key, &e.Value, &createdAt); err != nil {
		return nil, err
	}

	var err error
	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// Record appends one audit entry.
func (l *Log) Record(ctx context.Context, kind, key, value string) error {
	entryID, err := id.Generate("audit")
	if err != nil {
		return fmt.Errorf("generate audit id: %w", err)
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO override_audit (id, kind, key, value, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entryID, kind, key, value, formatTime(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM override_audit
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
