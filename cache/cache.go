/*
Package cache provides the calculation-result cache.

Both engines are pure functions of their inputs, so a result can be
cached forever under a digest of the canonical request. The API layer
keys entries by SHA-256 of the request body; a cache hit skips the
engine entirely.

Two implementations: Redis for deployments, Memory for tests and
single-process runs.
*/
package cache

import "context"

// Repository is the cache contract used by the API layer.
type Repository interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value. Calculation results never expire; inputs
	// fully determine outputs.
	Set(ctx context.Context, key, value string) error
}
