package enrich

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"txHumanizer/internal/model"
)

// TokenMetaCache caches token metadata by address. Addresses that are not
// tokens are cached as misses so they are not queried again.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]tokenEntry
}

type tokenEntry struct {
	meta model.TokenMeta
	ok   bool
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]tokenEntry)}
}

// Get returns (meta, isToken, cached).
func (c *TokenMetaCache) Get(address common.Address) (model.TokenMeta, bool, bool) {
	c.mu.RLock()
	entry, cached := c.data[address]
	c.mu.RUnlock()
	return entry.meta, entry.ok, cached
}

func (c *TokenMetaCache) Set(address common.Address, meta model.TokenMeta) {
	c.mu.Lock()
	c.data[address] = tokenEntry{meta: meta, ok: true}
	c.mu.Unlock()
}

func (c *TokenMetaCache) SetMiss(address common.Address) {
	c.mu.Lock()
	c.data[address] = tokenEntry{}
	c.mu.Unlock()
}

// ReadCache caches contract metadata reads by contract and key.
type ReadCache struct {
	mu   sync.RWMutex
	data map[readKey]string
}

type readKey struct {
	contract common.Address
	key      string
}

func NewReadCache() *ReadCache {
	return &ReadCache{data: make(map[readKey]string)}
}

func (c *ReadCache) Get(contract common.Address, key string) (string, bool) {
	c.mu.RLock()
	v, ok := c.data[readKey{contract, key}]
	c.mu.RUnlock()
	return v, ok
}

func (c *ReadCache) Set(contract common.Address, key, value string) {
	c.mu.Lock()
	c.data[readKey{contract, key}] = value
	c.mu.Unlock()
}
