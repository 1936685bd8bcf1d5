// Package ingestor runs the per-category ingestion loop: one contract-log
// notification at a time, each handed to the indexer for sequence assignment.
package ingestor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/fr0stylo/chaindex/internal/app/services"
	"github.com/fr0stylo/chaindex/internal/event"
)

// Ingestor consumes a single category's log stream. Notifications are
// processed strictly sequentially within one instance, so two logs for the
// same category cannot race inside this process; concurrent processes for
// the same category are serialized by the storage backend's atomic INCR.
type Ingestor struct {
	indexer  *services.Indexer
	category event.Category
	log      *slog.Logger
}

// New constructs an ingestor for the given category.
func New(indexer *services.Indexer, category event.Category, log *slog.Logger) *Ingestor {
	if log == nil {
		log = slog.Default()
	}
	return &Ingestor{indexer: indexer, category: category, log: log}
}

// Run consumes logs until the stream errors, the error channel fires, or ctx
// is cancelled. Every failure is returned to the caller unretried; the
// subscriber process treats it as fatal and relies on its supervisor for
// restarts. Duplicate deliveries from the transport are indexed as distinct
// records: the sequence number means "the Nth ingestion", not "the Nth
// unique event".
func (i *Ingestor) Run(ctx context.Context, logs <-chan types.Log, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			return fmt.Errorf("%s subscription failed: %w", i.category, err)
		case notification, ok := <-logs:
			if !ok {
				return fmt.Errorf("%s subscription closed", i.category)
			}
			sequence, err := i.indexer.Ingest(ctx, i.category, &notification)
			if err != nil {
				return fmt.Errorf("ingest %s notification: %w", i.category, err)
			}
			i.log.InfoContext(ctx, "event indexed",
				"category", i.category.String(),
				"sequence", sequence,
				"block", notification.BlockNumber,
				"tx", notification.TxHash.Hex())
		}
	}
}
