// Package cache stores raw upstream payloads so repeated species lookups do
// not have to reach the Pokémon API again.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the cached value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key. A ttl of zero keeps the entry until evicted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
