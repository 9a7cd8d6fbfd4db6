// Package cache stores rendered artifacts keyed by a content hash.
//
// # Backends
//
//   - [FileCache]: one file per entry under the user cache directory (default)
//   - [RedisCache]: shared cache for the preview server and CI runners
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer]: [DefaultKeyer] hashes the layout together with
// the render options, and [ScopedKeyer] prefixes keys so several catalogs or
// configurations can share one backend.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 7 * 24 * time.Hour

// DefaultDir returns the per-user cache directory for assetgrid.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "assetgrid"), nil
}
