// Package cache provides content-addressed caching for computed attribute
// arrays and rendered artifacts.
//
// Attribute computation is deterministic given a hierarchy and its inputs,
// so results are cached under keys derived from the SHA-256 hash of the
// serialized hierarchy document plus the computation options. Three backends
// are provided: [FileCache] for CLI usage, [RedisCache] for multi-instance
// deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
