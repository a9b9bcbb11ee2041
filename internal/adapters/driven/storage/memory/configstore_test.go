package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"search.page_bound": 100, "keywords.strategy": "rules"},
		map[string]any{"search.page_bound": 20},
	)

	assert.Equal(t, 20, store.GetInt("search.page_bound"), "later seeds win")
	assert.Equal(t, "rules", store.GetString("keywords.strategy"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.model", "llama3"))
	require.NoError(t, store.Set("llm.model", "qwen2"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "qwen2", val)
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 5, 5},
		{"int64 from toml", int64(7), 7},
		{"float64 from json", float64(9), 9},
		{"string", "10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore(map[string]any{"k": tt.value})
			assert.Equal(t, tt.want, store.GetInt("k"))
		})
	}
}

func TestConfigStore_TypeMismatches(t *testing.T) {
	store := NewConfigStore(map[string]any{"s": 1, "b": "yes", "l": "a,b"})

	assert.Empty(t, store.GetString("s"))
	assert.False(t, store.GetBool("b"))
	assert.Nil(t, store.GetStringSlice("l"))
	assert.Empty(t, store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"typed":   []string{"и", "для"},
		"decoded": []any{"с", 1, "на"},
	})

	assert.Equal(t, []string{"и", "для"}, store.GetStringSlice("typed"))
	assert.Equal(t, []string{"с", "на"}, store.GetStringSlice("decoded"))
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"typed": []string{"a"}})

	got := store.GetStringSlice("typed")
	got[0] = "changed"

	assert.Equal(t, []string{"a"}, store.GetStringSlice("typed"))
}

func TestConfigStore_SaveLoad(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Save())
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, 2, store.Saves())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("search.update_interval", i)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.update_interval")
		}()
	}
	wg.Wait()

	_, ok := store.Get("search.update_interval")
	assert.True(t, ok)
}
