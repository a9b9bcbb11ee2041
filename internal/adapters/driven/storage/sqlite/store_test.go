package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wbrank/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "cache.db"), store.Path())
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	store := newTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.ShardCache().Put(context.Background(), 4012, "basket-24"))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	basket, err := second.ShardCache().Get(context.Background(), 4012)
	require.NoError(t, err)
	assert.Equal(t, "basket-24", basket)
}

func TestStore_Migrate_FailingMigrationIsNotRecorded(t *testing.T) {
	store := newTestStore(t)
	fsys := fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE oops (")},
	}

	err := store.migrate(fsys)
	require.Error(t, err)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestStore_Migrate_SkipsUnnumberedFiles(t *testing.T) {
	store := newTestStore(t)
	fsys := fstest.MapFS{
		"readme.up.sql":   {Data: []byte("garbage")},
		"002_index.up.sql": {Data: []byte("CREATE INDEX IF NOT EXISTS idx_shard_basket ON shard_cache(basket);")},
	}

	require.NoError(t, store.migrate(fsys))

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestShardCache_PutGet(t *testing.T) {
	cache := newTestStore(t).ShardCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, 4012, "basket-24"))

	basket, err := cache.Get(ctx, 4012)
	require.NoError(t, err)
	assert.Equal(t, "basket-24", basket)
}

func TestShardCache_Get_NotFound(t *testing.T) {
	cache := newTestStore(t).ShardCache()

	_, err := cache.Get(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShardCache_Put_Replaces(t *testing.T) {
	cache := newTestStore(t).ShardCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, 4012, "basket-24"))
	require.NoError(t, cache.Put(ctx, 4012, "basket-26"))

	basket, err := cache.Get(ctx, 4012)
	require.NoError(t, err)
	assert.Equal(t, "basket-26", basket)
}

func TestShardCache_Delete(t *testing.T) {
	cache := newTestStore(t).ShardCache()
	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, 4012, "basket-24"))

	require.NoError(t, cache.Delete(ctx, 4012))

	_, err := cache.Get(ctx, 4012)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShardCache_ClosedStore(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	cache := store.ShardCache()
	require.NoError(t, store.Close())

	_, err = cache.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
