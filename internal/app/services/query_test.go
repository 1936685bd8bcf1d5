package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fr0stylo/chaindex/internal/adapters/memory"
	"github.com/fr0stylo/chaindex/internal/event"
)

func TestQuantityBeforeFirstIngest(t *testing.T) {
	t.Parallel()

	query := NewQuery(memory.NewStore())
	count, found, err := query.Quantity(context.Background(), event.CollectionCreated)
	if err != nil {
		t.Fatalf("quantity on empty store: %v", err)
	}
	if found || count != 0 {
		t.Fatalf("quantity on empty store = %d found=%v, want absent", count, found)
	}
}

func TestByIndexAbsentIsNotAnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	indexer := NewIndexer(store, nil)
	query := NewQuery(store)

	if _, err := indexer.Ingest(ctx, event.TokenMinted, json.RawMessage(`"only"`)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	// Beyond the allocated range, zero, and negative: all defined absent
	// results, never errors.
	for _, index := range []int64{2, 100, 0, -1, -9000} {
		record, found, err := query.ByIndex(ctx, event.TokenMinted, index)
		if err != nil {
			t.Fatalf("ByIndex(%d) errored: %v", index, err)
		}
		if found || record != nil {
			t.Fatalf("ByIndex(%d) = %s found=%v, want absent", index, record, found)
		}
	}
}

func TestQuantityCorruptCounterSurfacesError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	if err := store.Set(ctx, event.CollectionCreated.QuantityKey(), []byte("not-a-number")); err != nil {
		t.Fatalf("seed corrupt counter: %v", err)
	}

	if _, _, err := NewQuery(store).Quantity(ctx, event.CollectionCreated); err == nil {
		t.Fatal("quantity over corrupt counter succeeded, want error")
	}
}

func TestQueryStorageFailurePropagates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &downStore{}
	query := NewQuery(store)

	if _, _, err := query.Quantity(ctx, event.CollectionCreated); !errors.Is(err, errDown) {
		t.Fatalf("quantity over down storage: %v, want errDown", err)
	}
	if _, _, err := query.ByIndex(ctx, event.CollectionCreated, 1); !errors.Is(err, errDown) {
		t.Fatalf("byindex over down storage: %v, want errDown", err)
	}
}

var errDown = errors.New("backend down")

type downStore struct{}

func (downStore) Incr(ctx context.Context, key string) (int64, error) { return 0, errDown }
func (downStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errDown
}
func (downStore) Set(ctx context.Context, key string, value []byte) error { return errDown }
