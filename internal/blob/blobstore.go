// Package blob wraps the backup blob storage backends behind a single
// interface. Other packages depend on blob.Store; only this package may
// import the infra implementations (enforced by an architecture test).
package blob

import (
	"pantrycore/internal/blob/core"
)

// Re-exported aliases so callers need only this package.
type (
	// Driver identifies a concrete blob storage backend implementation.
	Driver = core.Driver
	// Info describes a stored blob.
	Info = core.Info
	// SignedURLOptions holds options for generating a pre-signed URL.
	SignedURLOptions = core.SignedURLOptions
	// Store is the backup snapshot storage interface.
	Store = core.Store
)

const (
	// DriverFilesystem selects the local filesystem backend.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 selects the S3 / MinIO backend.
	DriverS3 = core.DriverS3
	// DriverMemory selects the in-memory backend.
	DriverMemory = core.DriverMemory
)

// ErrUnsupported is returned when an optional capability is not available.
var ErrUnsupported = core.ErrUnsupported

// ErrNotFound is returned when the requested key does not exist.
var ErrNotFound = core.ErrNotFound
