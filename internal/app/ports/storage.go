// Package ports declares the interfaces the application services depend on.
package ports

import (
	"context"
	"errors"
)

// ErrStorageUnavailable indicates the storage backend could not serve a
// single-key operation (pool exhaustion, connection failure). Callers decide
// whether that is fatal: the subscriber exits, the query service maps it to
// one failed request.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Storage is the atomic counter + key-value store the indexer writes to and
// the query service reads from. All operations are single-key; no multi-key
// atomicity is assumed anywhere.
type Storage interface {
	// Incr atomically increments the integer at key by one and returns the
	// post-increment value. A missing key counts as zero. This is the sole
	// ordering authority for sequence allocation and must never be
	// implemented as a read-then-write pair.
	Incr(ctx context.Context, key string) (int64, error)

	// Get returns the value at key, or found=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set writes value at key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
