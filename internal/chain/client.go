package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"txHumanizer/internal/model"
)

// Client wraps go-ethereum RPC and provides helper methods.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client

	mu      sync.RWMutex
	chainID *big.Int
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID, cached after the first call.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	c.mu.RLock()
	cached := c.chainID
	c.mu.RUnlock()
	if cached != nil {
		return new(big.Int).Set(cached), nil
	}

	id, err := c.ethClient.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.chainID = new(big.Int).Set(id)
	c.mu.Unlock()
	return id, nil
}

// CallContract performs an eth_call for a contract method.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return c.ethClient.CallContract(ctx, msg, blockNumber)
}

// Transaction fetches a transaction by hash and converts it into a record.
// mined is false while the transaction is still pending.
func (c *Client) Transaction(ctx context.Context, hash common.Hash) (record model.TransactionRecord, mined bool, err error) {
	tx, pending, err := c.ethClient.TransactionByHash(ctx, hash)
	if err != nil {
		return model.TransactionRecord{}, false, fmt.Errorf("fetch tx %s: %w", hash.Hex(), err)
	}
	chainID := tx.ChainId()
	if chainID == nil || chainID.Sign() == 0 {
		if chainID, err = c.GetChainID(ctx); err != nil {
			return model.TransactionRecord{}, false, fmt.Errorf("chain id: %w", err)
		}
	}
	record, err = BuildTransactionRecord(chainID, tx)
	if err != nil {
		return model.TransactionRecord{}, false, err
	}
	return record, !pending, nil
}
