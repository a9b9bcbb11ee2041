package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wbrank/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wbrank/internal/core/domain"
)

func TestSessionService_Register(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())

	token, err := service.Register("chat-1", 42)

	require.NoError(t, err)
	require.NotNil(t, token)
	assert.False(t, token.Cancelled())
	assert.True(t, service.IsActive("chat-1"))
}

func TestSessionService_Register_RejectsOverlap(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())
	first, err := service.Register("chat-1", 42)
	require.NoError(t, err)

	second, err := service.Register("chat-1", 43)

	assert.ErrorIs(t, err, domain.ErrSearchInProgress)
	assert.Nil(t, second)
	assert.False(t, first.Cancelled(), "the running search is untouched")
}

func TestSessionService_Cancel(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())
	token, err := service.Register("chat-1", 42)
	require.NoError(t, err)

	ok := service.Cancel("chat-1")

	assert.True(t, ok)
	assert.True(t, token.Cancelled())
	assert.False(t, service.IsActive("chat-1"))
}

func TestSessionService_Cancel_NoActiveSearch(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())

	assert.False(t, service.Cancel("chat-1"))
}

func TestSessionService_Cancel_Twice(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())
	_, err := service.Register("chat-1", 42)
	require.NoError(t, err)

	assert.True(t, service.Cancel("chat-1"))
	assert.False(t, service.Cancel("chat-1"))
}

func TestSessionService_Finish(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())
	token, err := service.Register("chat-1", 42)
	require.NoError(t, err)

	service.Finish("chat-1", token)

	assert.False(t, service.IsActive("chat-1"))
	_, err = service.Register("chat-1", 42)
	assert.NoError(t, err, "key is reusable after finish")
}

func TestSessionService_Finish_StaleTokenKeepsNewerSearch(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())
	stale, err := service.Register("chat-1", 42)
	require.NoError(t, err)
	require.True(t, service.Cancel("chat-1"))

	fresh, err := service.Register("chat-1", 43)
	require.NoError(t, err)

	service.Finish("chat-1", stale)

	assert.True(t, service.IsActive("chat-1"))
	assert.False(t, fresh.Cancelled())
}

func TestSessionService_Finish_NilToken(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())
	_, err := service.Register("chat-1", 42)
	require.NoError(t, err)

	service.Finish("chat-1", nil)

	assert.True(t, service.IsActive("chat-1"))
}

func TestSessionService_ConcurrentCancel(t *testing.T) {
	service := NewSessionService(memory.NewSessionRegistry())
	token, err := service.Register("chat-1", 42)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.Cancel("chat-1")
		}()
	}
	wg.Wait()

	assert.True(t, token.Cancelled())
	assert.False(t, service.IsActive("chat-1"))
}
