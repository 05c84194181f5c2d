package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

type sqliteJournal struct {
	db *sql.DB
}

func newSQLite(path string) (*sqliteJournal, error) {
	if path == "" {
		path = filepath.Join("data", "journal.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS write_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at TEXT NOT NULL,
		kind TEXT NOT NULL,
		actor TEXT NOT NULL DEFAULT '',
		bytes INTEGER NOT NULL DEFAULT 0,
		backup_key TEXT NOT NULL DEFAULT '',
		created INTEGER NOT NULL DEFAULT 0
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create write_log table: %w", err)
	}
	return &sqliteJournal{db: db}, nil
}

func (j *sqliteJournal) Driver() Driver { return DriverSQLite }

func (j *sqliteJournal) Append(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO write_log (at, kind, actor, bytes, backup_key, created) VALUES (?, ?, ?, ?, ?, ?)`,
		e.At.Format(time.RFC3339Nano), e.Kind, e.Actor, e.Bytes, e.BackupKey, boolToInt(e.Created))
	if err != nil {
		return fmt.Errorf("append write_log: %w", err)
	}
	return nil
}

func (j *sqliteJournal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, at, kind, actor, bytes, backup_key, created FROM write_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select write_log: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanEntries(rows)
}

func (j *sqliteJournal) Close() error { return j.db.Close() }

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			at      string
			created int
		)
		if err := rows.Scan(&e.ID, &at, &e.Kind, &e.Actor, &e.Bytes, &e.BackupKey, &created); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", at, err)
		}
		e.At = ts
		e.Created = created != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
