// Package cache provides byte caching for fetched raster assets.
//
// The engine downloads background and logo rasters over HTTP; this package
// caches the raw bytes so repeated renders and exports of the same banner
// don't refetch them. Two implementations are provided:
//   - FileCache: persistent cache under a directory (CLI usage)
//   - NullCache: disables caching (tests, --no-cache)
//
// Keys are opaque strings; ImageKey derives a stable key from a raster URL.
package cache

import (
	"context"
	"time"
)

// DefaultImageTTL is how long fetched raster bytes stay cached.
const DefaultImageTTL = 24 * time.Hour

// Cache is the interface for byte caches.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ImageKey derives a cache key for raster bytes fetched from url.
func ImageKey(url string) string {
	return "img:" + Hash([]byte(url))
}
