package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancelToken_DefaultUnset(t *testing.T) {
	assert.False(t, NewCancelToken().Cancelled())
}

func TestCancelToken_NilIsNeverCancelled(t *testing.T) {
	var token *CancelToken
	assert.False(t, token.Cancelled())
}

func TestCancelToken_CancelIsIdempotent(t *testing.T) {
	token := NewCancelToken()

	assert.True(t, token.Cancel())
	assert.False(t, token.Cancel())
	assert.True(t, token.Cancelled())
}

func TestCancelToken_ConcurrentCancel(t *testing.T) {
	token := NewCancelToken()

	var wg sync.WaitGroup
	var mu sync.Mutex
	changed := 0
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if token.Cancel() {
				mu.Lock()
				changed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, changed)
	assert.True(t, token.Cancelled())
}
