// resolver/cache_test.go
package resolver_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
	"github.com/sapictureday/sail/resolver"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	defer logger.Sync()
	os.Exit(m.Run())
}

func TestCache(t *testing.T) {
	ws := &model.Workspace{ID: "w1", Name: "Studio"}

	t.Run("GetMissesOnAbsentKey", func(t *testing.T) {
		cache := resolver.NewCache(time.Minute)
		_, ok := cache.Get("user:u1")
		assert.False(t, ok)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		cache := resolver.NewCache(time.Minute)
		cache.Set("user:u1", ws)

		got, ok := cache.Get("user:u1")
		assert.True(t, ok)
		assert.Equal(t, ws, got)
	})

	t.Run("NilValueIsAHit", func(t *testing.T) {
		cache := resolver.NewCache(time.Minute)
		cache.Set("user:u1", nil)

		got, ok := cache.Get("user:u1")
		assert.True(t, ok)
		assert.Nil(t, got)
	})

	t.Run("EntryExpiresAfterTTL", func(t *testing.T) {
		cache := resolver.NewCache(30 * time.Millisecond)
		cache.Set("user:u1", ws)

		_, ok := cache.Get("user:u1")
		assert.True(t, ok)

		time.Sleep(40 * time.Millisecond)
		_, ok = cache.Get("user:u1")
		assert.False(t, ok)
	})

	t.Run("ClearAllPurgesEveryKey", func(t *testing.T) {
		cache := resolver.NewCache(time.Minute)
		cache.Set("user:u1", ws)
		cache.Set("workspace:w1", ws)
		assert.Equal(t, 2, cache.Len())

		cache.ClearAll()
		assert.Equal(t, 0, cache.Len())
		_, ok := cache.Get("user:u1")
		assert.False(t, ok)
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		cache := resolver.NewCache(time.Minute)
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					cache.Set("user:u1", ws)
					cache.Get("user:u1")
					if j%25 == 0 {
						cache.ClearAll()
					}
				}
			}()
		}
		wg.Wait()
	})
}
