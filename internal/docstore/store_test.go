package docstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pantrycore/internal/blob"
	"pantrycore/internal/journal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir(), blob.NewMemory())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestReadMissingDocument(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Read(KindCategories); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnsureExistsCreatesOnceWithoutBackup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	content, created, err := store.EnsureExists(ctx, KindCustomItems, nil)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !created {
		t.Fatal("expected creation")
	}
	if string(content) != string(KindCustomItems.DefaultContent()) {
		t.Fatalf("unexpected default content %q", content)
	}

	// First creation never snapshots.
	infos, err := store.Rotator(KindCustomItems).List(ctx)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("creation produced a backup: %+v", infos)
	}

	// Idempotent: second call reads, does not recreate.
	_, created, err = store.EnsureExists(ctx, KindCustomItems, nil)
	if err != nil || created {
		t.Fatalf("second ensure: created=%v err=%v", created, err)
	}
}

func TestWriteSnapshotsPriorVersion(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	res, err := store.Write(ctx, KindPreppedInventory, []byte(`{"dough":{"count":1}}`), "dave")
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	if !res.Created || res.BackupKey != "" {
		t.Fatalf("first write should create without backup: %+v", res)
	}

	res, err = store.Write(ctx, KindPreppedInventory, []byte(`{"dough":{"count":2}}`), "dave")
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if res.Created || res.BackupKey == "" {
		t.Fatalf("second write should snapshot: %+v", res)
	}

	infos, err := store.Rotator(KindPreppedInventory).List(ctx)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(infos) != 1 || infos[0].Key != res.BackupKey {
		t.Fatalf("backup missing: %+v", infos)
	}
}

func TestWritePrettyPrintsAndRejectsInvalidJSON(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Write(ctx, KindCategories, []byte(`{"ingredients":[]`), ""); err == nil {
		t.Fatal("invalid JSON accepted")
	}

	if _, err := store.Write(ctx, KindCategories, []byte(`{"ingredients":["Specials"]}`), ""); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(store.Dir(), KindCategories.Filename()))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "{\n  \"ingredients\": [\n    \"Specials\"\n  ]\n}"
	if string(raw) != want {
		t.Fatalf("document not pretty-printed:\n%q", raw)
	}
}

func TestWriteJournalsOutcome(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	jnl := journal.NewMemory()
	store.SetJournal(jnl)

	if _, err := store.Write(ctx, KindRawInventory, []byte(`{}`), "slade"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.Write(ctx, KindRawInventory, []byte(`{"x":{"count":1}}`), "slade"); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := jnl.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Created || !entries[1].Created {
		t.Fatalf("created flags wrong: %+v", entries)
	}
	if entries[0].Actor != "slade" || entries[0].Kind != string(KindRawInventory) {
		t.Fatalf("entry fields wrong: %+v", entries[0])
	}
	if entries[0].BackupKey == "" {
		t.Fatal("overwrite entry must record its backup key")
	}
}

func TestNewCreatesBackupDirsForFilesystem(t *testing.T) {
	dataDir := t.TempDir()
	backupRoot := t.TempDir()
	fsStore, err := blob.NewFilesystem(backupRoot)
	if err != nil {
		t.Fatalf("new fs blob store: %v", err)
	}
	if _, err := New(dataDir, fsStore); err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, kind := range Kinds() {
		dir := filepath.Join(backupRoot, kind.BackupDir())
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			t.Errorf("backup dir %s missing: %v", dir, err)
		}
	}
}

func TestKindForFilenameAllowList(t *testing.T) {
	for _, kind := range Kinds() {
		got, ok := KindForFilename(kind.Filename())
		if !ok || got != kind {
			t.Errorf("round trip failed for %s", kind)
		}
	}
	if _, ok := KindForFilename("../../etc/passwd"); ok {
		t.Fatal("traversal filename accepted")
	}
	if _, ok := KindForFilename("notes.json"); ok {
		t.Fatal("unknown filename accepted")
	}
}
