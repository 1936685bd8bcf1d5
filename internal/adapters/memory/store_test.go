package memory

import (
	"context"
	"sync"
	"testing"
)

func TestIncrStartsAtOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	for want := int64(1); want <= 3; want++ {
		got, err := store.Incr(ctx, "k")
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if got != want {
			t.Fatalf("incr = %d, want %d", got, want)
		}
	}

	// Counters read back as decimal strings, matching the redis adapter.
	value, found, err := store.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("get counter: found=%v err=%v", found, err)
	}
	if string(value) != "3" {
		t.Fatalf("counter value = %q, want 3", value)
	}
}

func TestGetAbsent(t *testing.T) {
	t.Parallel()

	value, found, err := NewStore().Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found || value != nil {
		t.Fatalf("get missing = %q found=%v, want absent", value, found)
	}
}

func TestSetOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	if err := store.Set(ctx, "k", []byte("a")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", []byte("b")); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, _, _ := store.Get(ctx, "k")
	if string(value) != "b" {
		t.Fatalf("value = %q, want b", value)
	}
}

func TestConcurrentIncrDistinct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	const workers = 50
	results := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := store.Incr(ctx, "counter")
			if err != nil {
				t.Errorf("incr: %v", err)
				return
			}
			results <- value
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, workers)
	for value := range results {
		if seen[value] {
			t.Fatalf("value %d returned twice", value)
		}
		seen[value] = true
	}
	if len(seen) != workers {
		t.Fatalf("%d distinct values, want %d", len(seen), workers)
	}
}
