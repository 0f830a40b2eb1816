package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CurrentEmpty(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "", r.Current(1))
}

func TestRegistry_StoreReplacesPrevious(t *testing.T) {
	r := NewRegistry()
	exp := time.Now().Add(time.Hour)

	r.Store(1, "first", exp)
	r.Store(1, "second", exp)

	assert.Equal(t, "second", r.Current(1))
	assert.Equal(t, 1, r.len())
}

func TestRegistry_UsersAreIndependent(t *testing.T) {
	r := NewRegistry()
	exp := time.Now().Add(time.Hour)

	r.Store(1, "token-a", exp)
	r.Store(2, "token-b", exp)

	assert.Equal(t, "token-a", r.Current(1))
	assert.Equal(t, "token-b", r.Current(2))
}

func TestRegistry_ExpiredIsDropped(t *testing.T) {
	r := NewRegistry()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	r.Store(1, "token", base.Add(time.Minute))
	assert.Equal(t, "token", r.Current(1))

	r.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.Equal(t, "", r.Current(1))
	assert.Equal(t, 0, r.len())
}

func TestRegistry_Revoke(t *testing.T) {
	r := NewRegistry()
	r.Store(1, "token", time.Now().Add(time.Hour))

	assert.False(t, r.Revoke(1, "other"))
	assert.Equal(t, "token", r.Current(1))

	assert.True(t, r.Revoke(1, "token"))
	assert.Equal(t, "", r.Current(1))
	assert.False(t, r.Revoke(1, "token"))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			tok := fmt.Sprintf("token-%d", id)
			r.Store(id, tok, exp)
			_ = r.Current(id)
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 50, r.len())
	assert.Equal(t, "token-7", r.Current(7))
}

func TestRegistry_StorePrunesExpired(t *testing.T) {
	r := NewRegistry()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	r.Store(1, "stale", base.Add(time.Minute))
	r.Store(2, "live", base.Add(time.Hour))
	require.Equal(t, 2, r.len())

	r.now = func() time.Time { return base.Add(2 * time.Minute) }
	r.Store(3, "fresh", base.Add(time.Hour))

	assert.Equal(t, 2, r.len())
	assert.Equal(t, "live", r.Current(2))
	assert.Equal(t, "fresh", r.Current(3))
}
