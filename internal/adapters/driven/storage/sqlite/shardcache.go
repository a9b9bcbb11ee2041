package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driven"
)

// shardCache implements driven.ShardCache.
type shardCache struct {
	store *Store
}

var _ driven.ShardCache = (*shardCache)(nil)

// Get returns the basket recorded for vol.
func (c *shardCache) Get(ctx context.Context, vol int64) (string, error) {
	var basket string
	err := c.store.db.QueryRowContext(ctx,
		"SELECT basket FROM shard_cache WHERE vol = ?", vol,
	).Scan(&basket)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying shard for vol %d: %w", vol, err)
	}
	return basket, nil
}

// Put records or replaces the basket for vol.
func (c *shardCache) Put(ctx context.Context, vol int64, basket string) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO shard_cache (vol, basket, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(vol) DO UPDATE SET basket = excluded.basket, updated_at = excluded.updated_at
	`, vol, basket, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving shard for vol %d: %w", vol, err)
	}
	return nil
}

// Delete forgets the basket for vol.
func (c *shardCache) Delete(ctx context.Context, vol int64) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM shard_cache WHERE vol = ?", vol); err != nil {
		return fmt.Errorf("deleting shard for vol %d: %w", vol, err)
	}
	return nil
}
