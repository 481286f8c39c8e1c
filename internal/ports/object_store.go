package ports

import (
	"context"
	"time"
)

// ObjectStore is the object-storage adapter. Only object-level
// operations: the app never creates buckets or touches policies.
type ObjectStore interface {
	// PresignUpload mints a write URL scoped to exactly key, bound to
	// contentType and valid for expiry. The object stays private.
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)

	// PresignDownload mints a read URL for key, valid for expiry.
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Remove deletes the object. Removing a missing object is not an error.
	Remove(ctx context.Context, key string) error

	// Exists reports whether the object is present.
	Exists(ctx context.Context, key string) (bool, error)
}
