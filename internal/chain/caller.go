package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Gas limits carried over from the deployment scripts; generous for the two
// calls below on a dev chain.
const (
	createCollectionGas = 3_000_000
	mintGas             = 150_000
)

// Caller submits contract transactions through a node that manages its own
// accounts (a dev chain), using eth_sendTransaction rather than local
// signing. It is not part of the read or ingestion path.
type Caller struct {
	rpc      *rpc.Client
	abi      abi.ABI
	contract common.Address
}

// NewCaller dials the node and parses the contract ABI from the given file.
// The file may be a Truffle build artifact (object with an "abi" key) or a
// raw ABI array.
func NewCaller(ctx context.Context, nodeURL, abiPath string, contract common.Address) (*Caller, error) {
	contractABI, err := loadABI(abiPath)
	if err != nil {
		return nil, err
	}

	client, err := rpc.DialContext(ctx, nodeURL)
	if err != nil {
		return nil, fmt.Errorf("dial chain node %s: %w", nodeURL, err)
	}

	return &Caller{rpc: client, abi: contractABI, contract: contract}, nil
}

// CreateCollection submits a createCollection(name, symbol) transaction.
func (c *Caller) CreateCollection(ctx context.Context, from common.Address, name, symbol string) error {
	return c.send(ctx, from, createCollectionGas, "createCollection", name, symbol)
}

// Mint submits a mint(collection, recipient, tokenURI) transaction.
func (c *Caller) Mint(ctx context.Context, from, collection, recipient common.Address, tokenURI string) error {
	return c.send(ctx, from, mintGas, "mint", collection, recipient, tokenURI)
}

// Close releases the RPC connection.
func (c *Caller) Close() {
	c.rpc.Close()
}

func (c *Caller) send(ctx context.Context, from common.Address, gas uint64, method string, args ...any) error {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("pack %s call: %w", method, err)
	}

	tx := map[string]any{
		"from": from,
		"to":   c.contract,
		"gas":  hexutil.Uint64(gas),
		"data": hexutil.Bytes(data),
	}

	var txHash common.Hash
	if err := c.rpc.CallContext(ctx, &txHash, "eth_sendTransaction", tx); err != nil {
		return fmt.Errorf("send %s transaction: %w", method, err)
	}
	return nil
}

func loadABI(path string) (abi.ABI, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("read abi file: %w", err)
	}

	// Truffle artifacts wrap the ABI in a larger metadata object.
	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(raw, &artifact); err == nil && len(artifact.ABI) > 0 {
		raw = artifact.ABI
	}

	parsed, err := abi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse abi: %w", err)
	}
	return parsed, nil
}
