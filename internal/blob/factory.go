package blob

import (
	"context"
	"fmt"
	"os"

	fsstore "pantrycore/internal/infra/blob/fs"
	memorystore "pantrycore/internal/infra/blob/memory"
	s3store "pantrycore/internal/infra/blob/s3"
)

// Environment variables read by Open.
const (
	// EnvDriver selects the backend: fs, s3 or memory. Defaults to fs.
	EnvDriver = "PANTRYCORE_BLOB_DRIVER"
	// EnvFSRoot is the directory root when driver=fs. Defaults to ./data/backups.
	EnvFSRoot = "PANTRYCORE_BLOB_FS_ROOT"
)

// NewFilesystem returns a filesystem-backed Store rooted at root.
func NewFilesystem(root string) (Store, error) { return fsstore.New(root) }

// NewMemory returns an in-memory Store suitable for tests.
func NewMemory() Store { return memorystore.New() }

// Open selects a blob Store implementation using environment variables.
//
//	PANTRYCORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	PANTRYCORE_BLOB_FS_ROOT: directory root when driver=fs (default ./data/backups)
//	(S3 specific variables documented in the s3 package)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv(EnvDriver)
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv(EnvFSRoot))
	case DriverS3:
		return s3store.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
