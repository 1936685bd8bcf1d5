// Package redis adapts a Redis client to the storage port. Redis is the
// default backend: INCR gives the atomic sequence allocation the indexer
// depends on, and the client's connection pool is the only shared mutable
// resource between the subscriber and the query service.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fr0stylo/chaindex/internal/app/ports"
)

// Store wraps a go-redis client as a ports.Storage.
type Store struct {
	client *redis.Client
}

// Open parses a redis URL, applies the pool bound, and verifies the
// connection with a PING before returning the adapter.
func Open(ctx context.Context, url string, poolSize int) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
	return &Store{client: client}, nil
}

// NewStore wraps an existing client, for callers that manage their own.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Incr delegates to the Redis INCR command, a single indivisible operation
// on the server.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	value, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: incr %s: %w", ports.ErrStorageUnavailable, key, err)
	}
	return value, nil
}

// Get returns the value at key; redis.Nil maps to the defined absent result.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %w", ports.ErrStorageUnavailable, key, err)
	}
	return value, true, nil
}

// Set writes value at key with no expiry; records live forever.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %w", ports.ErrStorageUnavailable, key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
