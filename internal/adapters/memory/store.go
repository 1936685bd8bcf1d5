// Package memory provides an in-process implementation of the storage port.
// It backs service and route tests; production deployments use the redis or
// sqlite adapters.
package memory

import (
	"context"
	"strconv"
	"sync"
)

// Store is a mutex-guarded map with the same observable semantics as the
// redis adapter: counters are stored as decimal strings and read back
// through Get.
type Store struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Incr atomically increments the counter at key and returns the new value.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := strconv.ParseInt(string(s.values[key]), 10, 64)
	current++
	s.values[key] = []byte(strconv.FormatInt(current, 10))
	return current, nil
}

// Get returns the value at key, or found=false when absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set writes value at key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Len reports the number of stored keys, counters included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
