// Package cache provides solve-result caching with pluggable backends.
//
// A layout is cached under a key derived from the problem content hash and
// the solve options, so an identical problem solved with identical options
// is served from cache instead of searched again. Backends: [FileCache] for
// local CLI usage, [RedisCache] for the server, and [NullCache] to disable
// caching.
//
// Caching is best-effort everywhere: a backend error degrades to a miss at
// the call site, never to a failed solve.
package cache

import (
	"context"
	"time"
)

// TTLLayout is the default lifetime for cached layouts. Solving is
// deterministic, so expiry exists only to bound backend growth; callers
// override it from configuration when a different window is wanted.
const TTLLayout = 24 * time.Hour

// Cache stores opaque byte values under string keys with optional expiry.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// the error is reserved for backend failures. A ttl of zero in Set means
// the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
