package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fr0stylo/chaindex/internal/app/ports"
	"github.com/fr0stylo/chaindex/internal/event"
)

// ErrSerialization indicates the payload could not be encoded. It is returned
// before any storage mutation, so no sequence number is consumed.
var ErrSerialization = errors.New("payload serialization failed")

// Indexer assigns durable sequence numbers to incoming events and persists
// them. It is the sole writer of both quantity counters and record keys.
type Indexer struct {
	storage ports.Storage
	log     *slog.Logger
}

// NewIndexer constructs an indexer over the shared storage backend.
func NewIndexer(storage ports.Storage, log *slog.Logger) *Indexer {
	if log == nil {
		log = slog.Default()
	}
	return &Indexer{storage: storage, log: log}
}

// Ingest serializes payload, atomically allocates the next sequence number
// for the category, and writes the record under the derived key.
//
// The single INCR is the ordering authority: two concurrent ingests for the
// same category receive distinct, adjacent numbers in the order their
// increments land at the backend. If the record write fails after the
// counter advanced, sequence n stays permanently unfillable; the counter is
// deliberately not rolled back because the backend offers no transactional
// primitive to do so safely.
func (i *Indexer) Ingest(ctx context.Context, category event.Category, payload any) (int64, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	sequence, err := i.storage.Incr(ctx, category.QuantityKey())
	if err != nil {
		return 0, fmt.Errorf("allocate sequence for %s: %w", category, err)
	}

	if err := i.storage.Set(ctx, category.RecordKey(sequence), data); err != nil {
		i.log.WarnContext(ctx, "record write failed after sequence allocation, index stays unfillable",
			"category", category.String(), "sequence", sequence)
		return 0, fmt.Errorf("write record %s: %w", category.RecordKey(sequence), err)
	}

	return sequence, nil
}
