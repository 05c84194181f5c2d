package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	postgresDriverName = "pgx"
	// Default DSN keeps parity with Open defaults while allowing overrides via env.
	defaultPostgresDSN = "postgres://localhost/pantrycore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the sql.Open hook for tests and returns a restore func.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

type postgresJournal struct {
	db *sql.DB
}

func newPostgres(ctx context.Context, dsn string) (*postgresJournal, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	openMu.Lock()
	db, err := sqlOpen(postgresDriverName, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS write_log (
		id BIGSERIAL PRIMARY KEY,
		at TIMESTAMPTZ NOT NULL,
		kind TEXT NOT NULL,
		actor TEXT NOT NULL DEFAULT '',
		bytes BIGINT NOT NULL DEFAULT 0,
		backup_key TEXT NOT NULL DEFAULT '',
		created BOOLEAN NOT NULL DEFAULT FALSE
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create write_log table: %w", err)
	}
	return &postgresJournal{db: db}, nil
}

func (j *postgresJournal) Driver() Driver { return DriverPostgres }

func (j *postgresJournal) Append(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO write_log (at, kind, actor, bytes, backup_key, created) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.At, e.Kind, e.Actor, e.Bytes, e.BackupKey, e.Created)
	if err != nil {
		return fmt.Errorf("append write_log: %w", err)
	}
	return nil
}

func (j *postgresJournal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, at, kind, actor, bytes, backup_key, created FROM write_log ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select write_log: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.At, &e.Kind, &e.Actor, &e.Bytes, &e.BackupKey, &e.Created); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (j *postgresJournal) Close() error { return j.db.Close() }
