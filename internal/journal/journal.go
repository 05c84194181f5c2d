// Package journal records every successful document write so operators can
// see who changed which inventory document and when. Entries are append-only;
// the journal is advisory and never blocks a save that already hit disk.
package journal

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Driver identifies a concrete journal backend implementation.
type Driver string

const (
	// DriverMemory keeps entries in process memory (tests / ephemeral).
	DriverMemory Driver = "memory"
	// DriverSQLite stores entries in an embedded sqlite file.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores entries in a PostgreSQL server.
	DriverPostgres Driver = "postgres"
)

// Entry is one recorded document write.
type Entry struct {
	ID        int64     `json:"id"`
	At        time.Time `json:"at"`
	Kind      string    `json:"kind"`
	Actor     string    `json:"actor,omitempty"`
	Bytes     int64     `json:"bytes"`
	BackupKey string    `json:"backup_key,omitempty"`
	Created   bool      `json:"created"`
}

// Journal is the append-only write log.
type Journal interface {
	// Append records one entry. The entry's ID and At are assigned by the backend
	// when zero.
	Append(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	// Driver returns the configured backend driver string.
	Driver() Driver
	// Close releases backend resources.
	Close() error
}

// Open selects a journal backend using environment variables.
// Defaults to sqlite when unset.
//
//	PANTRYCORE_JOURNAL_DRIVER: memory|sqlite|postgres (default sqlite)
//	PANTRYCORE_JOURNAL_SQLITE_PATH: path to sqlite file (default ./data/journal.db)
//	PANTRYCORE_JOURNAL_POSTGRES_DSN: postgres DSN when driver=postgres
func Open(ctx context.Context) (Journal, error) {
	driver := os.Getenv("PANTRYCORE_JOURNAL_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return newMemory(), nil
	case DriverSQLite:
		return newSQLite(os.Getenv("PANTRYCORE_JOURNAL_SQLITE_PATH"))
	case DriverPostgres:
		return newPostgres(ctx, os.Getenv("PANTRYCORE_JOURNAL_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown journal driver %s", driver)
	}
}

// NewSQLite returns a sqlite-backed journal at path.
func NewSQLite(path string) (Journal, error) { return newSQLite(path) }
