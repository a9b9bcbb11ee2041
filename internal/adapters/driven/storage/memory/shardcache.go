package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
)

// Ensure ShardCache implements the interface.
var _ driven.ShardCache = (*ShardCache)(nil)

// ShardCache is an in-memory implementation of driven.ShardCache.
// It is used when the persistent cache is disabled.
type ShardCache struct {
	mu      sync.RWMutex
	baskets map[int64]string
}

// NewShardCache creates a new in-memory shard cache.
func NewShardCache() *ShardCache {
	return &ShardCache{
		baskets: make(map[int64]string),
	}
}

// Get returns the basket recorded for vol.
func (c *ShardCache) Get(_ context.Context, vol int64) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	basket, ok := c.baskets[vol]
	if !ok {
		return "", domain.ErrNotFound
	}
	return basket, nil
}

// Put records the basket for vol.
func (c *ShardCache) Put(_ context.Context, vol int64, basket string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baskets[vol] = basket
	return nil
}

// Delete forgets the basket for vol.
func (c *ShardCache) Delete(_ context.Context, vol int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.baskets, vol)
	return nil
}
