package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fr0stylo/chaindex/internal/app/ports"
	"github.com/fr0stylo/chaindex/internal/event"
)

// Query answers read-only questions against the shared storage. It never
// mutates state; both operations are stateless and idempotent.
type Query struct {
	storage ports.Storage
}

// NewQuery constructs a query service over the shared storage backend.
func NewQuery(storage ports.Storage) *Query {
	return &Query{storage: storage}
}

// Quantity returns the number of ingested events for the category.
// found=false means the counter has never been created, which is a defined
// empty result rather than an error.
func (q *Query) Quantity(ctx context.Context, category event.Category) (count int64, found bool, err error) {
	raw, found, err := q.storage.Get(ctx, category.QuantityKey())
	if err != nil {
		return 0, false, fmt.Errorf("read quantity for %s: %w", category, err)
	}
	if !found {
		return 0, false, nil
	}

	count, err = strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("quantity counter %s holds non-numeric value %q", category.QuantityKey(), raw)
	}
	return count, true, nil
}

// ByIndex returns the record at the given sequence number. Any sequence with
// no record, including zero, negatives, and values past the current quantity,
// yields found=false rather than an error: the caller asked for something
// absent, the system is not broken.
func (q *Query) ByIndex(ctx context.Context, category event.Category, sequence int64) (record []byte, found bool, err error) {
	record, found, err = q.storage.Get(ctx, category.RecordKey(sequence))
	if err != nil {
		return nil, false, fmt.Errorf("read record %s: %w", category.RecordKey(sequence), err)
	}
	return record, found, nil
}
