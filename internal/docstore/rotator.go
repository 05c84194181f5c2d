package docstore

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pantrycore/internal/blob"
)

// timestampLayout orders snapshot names lexicographically by creation time.
const timestampLayout = "2006-01-02_15-04-05"

// Rotator snapshots the prior version of one document kind into the blob
// store and prunes snapshots beyond the kind's retention cap. One rotator is
// shared by every write path for that kind.
type Rotator struct {
	kind  Kind
	cap   int
	store blob.Store
	now   func() time.Time
}

// NewRotator returns a rotator for kind backed by store.
func NewRotator(kind Kind, store blob.Store) *Rotator {
	return &Rotator{kind: kind, cap: kind.RetentionCap(), store: store, now: time.Now}
}

// SetClock overrides the snapshot timestamp source. Tests only.
func (r *Rotator) SetClock(now func() time.Time) { r.now = now }

func (r *Rotator) keyAt(ts time.Time) string {
	return fmt.Sprintf("%s/%s_%s.json", r.kind.BackupDir(), r.kind.BackupPrefix(), ts.Format(timestampLayout))
}

// Snapshot stores prior under a timestamped key and returns the key. Two
// snapshots within the same second collapse onto one key; the newer content
// wins, mirroring a plain file copy.
func (r *Rotator) Snapshot(ctx context.Context, prior []byte) (string, error) {
	key := r.keyAt(r.now().UTC())
	if _, err := r.store.Head(ctx, key); err == nil {
		if _, err := r.store.Delete(ctx, key); err != nil {
			return "", fmt.Errorf("replace snapshot %s: %w", key, err)
		}
	}
	if _, err := r.store.Put(ctx, key, bytes.NewReader(prior)); err != nil {
		return "", fmt.Errorf("snapshot %s: %w", key, err)
	}
	return key, nil
}

// List returns the kind's snapshots, newest first. Ordering is by
// modification time descending with the key (timestamp string) as the
// deterministic tie-break.
func (r *Rotator) List(ctx context.Context) ([]blob.Info, error) {
	infos, err := r.store.List(ctx, r.kind.BackupDir()+"/")
	if err != nil {
		return nil, err
	}
	prefix := r.kind.BackupDir() + "/" + r.kind.BackupPrefix() + "_"
	kept := infos[:0]
	for _, info := range infos {
		if strings.HasPrefix(info.Key, prefix) && strings.HasSuffix(info.Key, ".json") {
			kept = append(kept, info)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if !kept[i].LastModified.Equal(kept[j].LastModified) {
			return kept[i].LastModified.After(kept[j].LastModified)
		}
		return kept[i].Key > kept[j].Key
	})
	return kept, nil
}

// Presign returns a download URL for one snapshot key where the blob driver
// supports it.
func (r *Rotator) Presign(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return r.store.PresignURL(ctx, key, blob.SignedURLOptions{Method: "GET", Expiry: ttl})
}

// Prune deletes snapshots beyond the retention cap and reports how many were
// removed.
func (r *Rotator) Prune(ctx context.Context) (int, error) {
	infos, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, info := range infos[minInt(r.cap, len(infos)):] {
		if _, err := r.store.Delete(ctx, info.Key); err != nil {
			return removed, fmt.Errorf("prune snapshot %s: %w", info.Key, err)
		}
		removed++
	}
	return removed, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
