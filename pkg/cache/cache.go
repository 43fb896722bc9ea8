// Package cache stores encoded artifacts between CLI runs.
//
// Generation is deterministic, so an artifact is fully identified by its
// inputs. A [Keyer] turns those inputs into opaque keys, and a [Cache] maps
// keys to bytes with an optional expiry. [FileCache] keeps entries on a billy
// filesystem; [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by strings.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Key types reported to cache hooks.
const (
	KeyTypeImage = "image"
	KeyTypeTree  = "tree"
)

// Default TTLs per artifact kind.
const (
	TTLImage = 7 * 24 * time.Hour
	TTLTree  = 7 * 24 * time.Hour
)
