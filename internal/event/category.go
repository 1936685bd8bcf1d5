// Package event defines the closed set of tracked contract events and the
// storage key schema shared by the indexer and the query service.
package event

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Category identifies one kind of tracked contract event. Each category owns
// an independent, 1-based sequence space and its own quantity counter.
type Category int

const (
	// CollectionCreated is emitted when a new NFT collection is deployed.
	CollectionCreated Category = iota
	// TokenMinted is emitted when a token is minted into a collection.
	TokenMinted
)

const keySeparator = ":"

// Topic hashes are keccak-256 of the Solidity event signatures; changing a
// contract event signature requires updating these in lockstep.
const (
	collectionCreatedTopic = "3454b57f2dca4f5a54e8358d096ac9d1a0d2dab98991ddb89ff9ea1746260617"
	tokenMintedTopic       = "c9fee7cd4889f66f10ff8117316524260a5242e88e25e0656dfb3f4196a21917"
)

// Categories lists every known category. Adding a category means extending
// this slice and the switches below; the compiler and TestCategoryTableComplete
// keep them in sync.
var Categories = []Category{CollectionCreated, TokenMinted}

// ParseCategory maps an HTTP path token to a category.
func ParseCategory(token string) (Category, bool) {
	switch token {
	case "collection_created":
		return CollectionCreated, true
	case "token_minted":
		return TokenMinted, true
	default:
		return 0, false
	}
}

// PathToken is the category's identifier in HTTP routes, the inverse of
// ParseCategory.
func (c Category) PathToken() string {
	switch c {
	case CollectionCreated:
		return "collection_created"
	case TokenMinted:
		return "token_minted"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// String returns the display name used in log lines and absent-result
// messages.
func (c Category) String() string {
	switch c {
	case CollectionCreated:
		return "CollectionCreated"
	case TokenMinted:
		return "TokenMinted"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// keyPrefix is the fixed storage token owned by the category. Prefixes must
// stay non-overlapping across categories and stable for the lifetime of a
// deployment; changing one orphans every record written under it.
func (c Category) keyPrefix() string {
	switch c {
	case CollectionCreated:
		return "cc"
	case TokenMinted:
		return "tm"
	default:
		return ""
	}
}

// QuantityKey is the storage key of the category's quantity counter.
func (c Category) QuantityKey() string {
	return c.keyPrefix() + keySeparator + "q"
}

// RecordKey is the storage key of the record at the given sequence number.
func (c Category) RecordKey(sequence int64) string {
	return fmt.Sprintf("%s%s%d", c.keyPrefix(), keySeparator, sequence)
}

// Topic is the log topic hash the category subscribes to.
func (c Category) Topic() common.Hash {
	switch c {
	case CollectionCreated:
		return common.HexToHash(collectionCreatedTopic)
	case TokenMinted:
		return common.HexToHash(tokenMintedTopic)
	default:
		return common.Hash{}
	}
}
