// Package cache stores rendered flow diagram artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for several service instances
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: stores nothing, used with --no-cache
//
// [Open] picks a backend from a URL.
//
// # Keys
//
// Keys are derived by a [Keyer] from a hash of the flow inputs plus the
// render options, so the same data and options always hit the same entry.
// Because DOT emission is byte-deterministic, a cached artifact is
// indistinguishable from a fresh render.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Open returns the cache described by rawURL.
//
// Supported forms:
//   - "" or a file path: [FileCache] in dir (rawURL overrides dir when set)
//   - "none": [NullCache]
//   - "redis://..." or "rediss://...": [RedisCache]
//   - "mongodb://..." or "mongodb+srv://...": [MongoCache]
func Open(ctx context.Context, rawURL, dir string) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch {
	case rawURL == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(rawURL, "redis://"), strings.HasPrefix(rawURL, "rediss://"):
		c, err = NewRedisCache(ctx, rawURL)
	case strings.HasPrefix(rawURL, "mongodb://"), strings.HasPrefix(rawURL, "mongodb+srv://"):
		c, err = NewMongoCache(ctx, rawURL, MongoOptions{})
	case strings.Contains(rawURL, "://"):
		return nil, fmt.Errorf("unsupported cache URL scheme: %s", rawURL)
	case rawURL != "":
		c, err = NewFileCache(rawURL)
	default:
		c, err = NewFileCache(dir)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
