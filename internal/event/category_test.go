package event

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestParseCategoryRoundTrip(t *testing.T) {
	t.Parallel()

	for _, category := range Categories {
		parsed, ok := ParseCategory(category.PathToken())
		if !ok {
			t.Fatalf("ParseCategory(%q) not recognized", category.PathToken())
		}
		if parsed != category {
			t.Fatalf("ParseCategory(%q) = %v, want %v", category.PathToken(), parsed, category)
		}
	}

	if _, ok := ParseCategory("unknown"); ok {
		t.Fatal("ParseCategory accepted an unknown token")
	}
	if _, ok := ParseCategory(""); ok {
		t.Fatal("ParseCategory accepted an empty token")
	}
}

func TestCategoryTableComplete(t *testing.T) {
	t.Parallel()

	seenPrefixes := make(map[string]Category)
	seenTopics := make(map[string]Category)
	for _, category := range Categories {
		prefix := category.keyPrefix()
		if prefix == "" {
			t.Fatalf("category %v has no key prefix", category)
		}
		if other, dup := seenPrefixes[prefix]; dup {
			t.Fatalf("categories %v and %v share key prefix %q", category, other, prefix)
		}
		seenPrefixes[prefix] = category

		topic := category.Topic().Hex()
		if category.Topic() == (common.Hash{}) {
			t.Fatalf("category %v has no topic hash", category)
		}
		if other, dup := seenTopics[topic]; dup {
			t.Fatalf("categories %v and %v share topic %s", category, other, topic)
		}
		seenTopics[topic] = category
	}
}

func TestKeySchema(t *testing.T) {
	t.Parallel()

	if got := CollectionCreated.QuantityKey(); got != "cc:q" {
		t.Fatalf("CollectionCreated quantity key = %q, want cc:q", got)
	}
	if got := TokenMinted.QuantityKey(); got != "tm:q" {
		t.Fatalf("TokenMinted quantity key = %q, want tm:q", got)
	}
	if got := CollectionCreated.RecordKey(7); got != "cc:7" {
		t.Fatalf("CollectionCreated record key = %q, want cc:7", got)
	}
	if got := TokenMinted.RecordKey(1); got != "tm:1" {
		t.Fatalf("TokenMinted record key = %q, want tm:1", got)
	}

	// Record keys must never collide with quantity keys or with the other
	// category's keys.
	keys := map[string]struct{}{}
	for _, category := range Categories {
		keys[category.QuantityKey()] = struct{}{}
		for seq := int64(1); seq <= 100; seq++ {
			key := category.RecordKey(seq)
			if _, dup := keys[key]; dup {
				t.Fatalf("duplicate storage key %q", key)
			}
			keys[key] = struct{}{}
		}
	}
}
