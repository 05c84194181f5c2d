package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"pantrycore/internal/blob"
	"pantrycore/internal/core"
	"pantrycore/internal/journal"
)

// ErrNotFound is returned by Read when the document does not exist yet.
var ErrNotFound = errors.New("docstore: document not found")

// Store owns the on-disk documents. Writes flow through one choke point so
// every overwrite is snapshotted, pruned, and journaled the same way.
type Store struct {
	dir      string
	backups  blob.Store
	rotators map[Kind]*Rotator
	journal  journal.Journal
	metrics  core.MetricsRecorder
	logger   *log.Logger
}

// WriteResult reports what a document write did.
type WriteResult struct {
	Created   bool
	BackupKey string
}

// New constructs a Store writing documents under dir and snapshots into
// backups. The data directory and per-kind backup directories are created up
// front, tolerating pre-existence.
func New(dir string, backups blob.Store) (*Store, error) {
	if dir == "" {
		dir = "./data"
	}
	s := &Store{
		dir:      dir,
		backups:  backups,
		rotators: make(map[Kind]*Rotator, len(Kinds())),
		logger:   log.New(os.Stderr, "[docstore] ", log.LstdFlags),
	}
	for _, kind := range Kinds() {
		s.rotators[kind] = NewRotator(kind, backups)
	}
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetJournal attaches an append-only write log. Journal failures never fail a
// write that already hit disk; they are logged.
func (s *Store) SetJournal(j journal.Journal) { s.journal = j }

// SetMetrics attaches a metrics recorder for write outcomes.
func (s *Store) SetMetrics(m core.MetricsRecorder) { s.metrics = m }

// SetLogger overrides the default logger.
func (s *Store) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Rotator returns the backup rotator for kind.
func (s *Store) Rotator(kind Kind) *Rotator { return s.rotators[kind] }

func (s *Store) ensureDirs() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	// Pre-create per-kind backup directories when the blob backend is a plain
	// directory tree; object-store backends have no directories to create.
	if rooted, ok := s.backups.(interface{ Root() string }); ok {
		for _, kind := range Kinds() {
			if err := os.MkdirAll(filepath.Join(rooted.Root(), kind.BackupDir()), 0o755); err != nil {
				return fmt.Errorf("create backup dir for %s: %w", kind, err)
			}
		}
	}
	return nil
}

func (s *Store) path(kind Kind) string { return filepath.Join(s.dir, kind.Filename()) }

// Read returns the document's raw JSON, or an error wrapping ErrNotFound.
func (s *Store) Read(kind Kind) ([]byte, error) {
	b, err := os.ReadFile(s.path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", kind, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}
	return b, nil
}

// EnsureExists reads the document, creating it with def (or the kind's
// default when def is nil) if absent. Idempotent: an existing document is
// never overwritten. A read failure other than not-found is logged and the
// default returned without persisting, so a later save can still create the
// file through the normal write path.
func (s *Store) EnsureExists(ctx context.Context, kind Kind, def []byte) (content []byte, created bool, err error) {
	if def == nil {
		def = kind.DefaultContent()
	}
	content, readErr := s.Read(kind)
	if readErr == nil {
		return content, false, nil
	}
	if !errors.Is(readErr, ErrNotFound) {
		s.logger.Printf("ensure %s: read failed, using default: %v", kind, readErr)
		return def, false, nil
	}
	if _, err := s.Write(ctx, kind, def, ""); err != nil {
		return nil, false, fmt.Errorf("create %s: %w", kind, err)
	}
	return def, true, nil
}

// Write persists content (re-indented) as the document of the given kind.
// When a prior version exists it is snapshotted first and old snapshots are
// pruned to the kind's retention cap; first creation never produces a
// snapshot. The write is journaled with the supplied actor.
func (s *Store) Write(ctx context.Context, kind Kind, content []byte, actor string) (WriteResult, error) {
	start := time.Now()
	res, err := s.write(ctx, kind, content, actor)
	if s.metrics != nil {
		s.metrics.Observe(ctx, "document_write_"+string(kind), err == nil, time.Since(start))
	}
	return res, err
}

func (s *Store) write(ctx context.Context, kind Kind, content []byte, actor string) (WriteResult, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, content, "", "  "); err != nil {
		return WriteResult{}, fmt.Errorf("invalid JSON for %s: %w", kind, err)
	}

	var res WriteResult
	prior, readErr := os.ReadFile(s.path(kind))
	switch {
	case readErr == nil:
		key, err := s.rotators[kind].Snapshot(ctx, prior)
		if err != nil {
			s.logger.Printf("write %s: backup snapshot failed: %v", kind, err)
		} else {
			res.BackupKey = key
			if _, err := s.rotators[kind].Prune(ctx); err != nil {
				s.logger.Printf("write %s: backup prune failed: %v", kind, err)
			}
		}
	case errors.Is(readErr, fs.ErrNotExist):
		res.Created = true
	default:
		return WriteResult{}, fmt.Errorf("stat %s: %w", kind, readErr)
	}

	if err := os.WriteFile(s.path(kind), pretty.Bytes(), 0o644); err != nil {
		return WriteResult{}, fmt.Errorf("write %s: %w", kind, err)
	}

	if s.journal != nil {
		entry := journal.Entry{
			Kind:      string(kind),
			Actor:     actor,
			Bytes:     int64(pretty.Len()),
			BackupKey: res.BackupKey,
			Created:   res.Created,
		}
		if err := s.journal.Append(ctx, entry); err != nil {
			s.logger.Printf("write %s: journal append failed: %v", kind, err)
		}
	}
	return res, nil
}
