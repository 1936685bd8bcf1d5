// Package chain wraps the go-ethereum client: the websocket log subscription
// consumed by the subscriber and the transaction caller used by the operator
// CLI. Reconnect and replay are deliberately absent; a broken stream is fatal
// to the consuming process.
package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/fr0stylo/chaindex/internal/event"
)

// Subscription is a live filtered log stream for one (contract, category)
// pair. Logs delivers decoded notifications; Errs delivers at most one
// terminal error.
type Subscription struct {
	Logs <-chan types.Log
	sub  ethereum.Subscription
}

// Errs exposes the subscription's terminal error channel.
func (s *Subscription) Errs() <-chan error {
	return s.sub.Err()
}

// Unsubscribe tears the stream down.
func (s *Subscription) Unsubscribe() {
	s.sub.Unsubscribe()
}

// Dial opens a websocket connection to the chain node.
func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial chain node %s: %w", url, err)
	}
	return client, nil
}

// Subscribe opens a filtered log subscription for the category's topic on the
// given contract. The returned channel is unbuffered on the client side; the
// caller must drain it strictly one log at a time to keep per-category
// ordering intact.
func Subscribe(ctx context.Context, client *ethclient.Client, contract common.Address, category event.Category) (*Subscription, error) {
	query := ethereum.FilterQuery{
		Addresses: []common.Address{contract},
		Topics:    [][]common.Hash{{category.Topic()}},
	}

	logs := make(chan types.Log)
	sub, err := client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s logs on %s: %w", category, contract.Hex(), err)
	}

	return &Subscription{Logs: logs, sub: sub}, nil
}
