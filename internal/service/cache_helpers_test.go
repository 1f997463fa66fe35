package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/godilite/team-scoring/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

func TestFindAndCache(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("cache hit skips fetch", func(t *testing.T) {
		c := mocks.NewMemoryCache()
		require.NoError(t, c.Set(ctx, "k", 42, time.Minute))
		var sf singleflight.Group

		v, hit, err := FindAndCache(ctx, c, &sf, "k", time.Minute, logger, func(context.Context) (int, error) {
			t.Fatal("fetch must not run on a hit")
			return 0, nil
		})

		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, 42, v)
	})

	t.Run("cache miss fetches and populates", func(t *testing.T) {
		c := mocks.NewMemoryCache()
		var sf singleflight.Group

		v, hit, err := FindAndCache(ctx, c, &sf, "k", time.Minute, logger, func(context.Context) (int, error) {
			return 7, nil
		})

		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, 7, v)
		assert.Eventually(t, func() bool { return len(c.Keys()) == 1 }, time.Second, 10*time.Millisecond)
	})

	t.Run("cache error is treated as miss", func(t *testing.T) {
		c := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				return errors.New("connection refused")
			},
		}
		var sf singleflight.Group

		v, hit, err := FindAndCache(ctx, c, &sf, "k", time.Minute, logger, func(context.Context) (string, error) {
			return "fresh", nil
		})

		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, "fresh", v)
	})

	t.Run("fetch error is returned and not cached", func(t *testing.T) {
		var sets atomic.Int32
		c := &mocks.MockCacher{
			SetFunc: func(ctx context.Context, key string, value any, exp time.Duration) error {
				sets.Add(1)
				return nil
			},
		}
		var sf singleflight.Group
		boom := errors.New("boom")

		_, _, err := FindAndCache(ctx, c, &sf, "k", time.Minute, logger, func(context.Context) (int, error) {
			return 0, boom
		})

		assert.ErrorIs(t, err, boom)
		time.Sleep(20 * time.Millisecond)
		assert.Zero(t, sets.Load())
	})

	t.Run("concurrent misses share one fetch", func(t *testing.T) {
		c := &mocks.MockCacher{}
		var sf singleflight.Group
		var calls atomic.Int32
		release := make(chan struct{})

		var wg sync.WaitGroup
		results := make([]int, 8)
		for i := range results {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, _, err := FindAndCache(ctx, c, &sf, "shared", time.Minute, logger, func(context.Context) (int, error) {
					calls.Add(1)
					<-release
					return 99, nil
				})
				assert.NoError(t, err)
				results[i] = v
			}()
		}
		time.Sleep(100 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, v := range results {
			assert.Equal(t, 99, v)
		}
	})
}

func TestAddTTLJitter(t *testing.T) {
	assert.Equal(t, time.Duration(0), addTTLJitter(0))
	assert.Equal(t, -time.Second, addTTLJitter(-time.Second))

	for i := 0; i < 50; i++ {
		got := addTTLJitter(10 * time.Minute)
		assert.GreaterOrEqual(t, got, 10*time.Minute-15*time.Second)
		assert.LessOrEqual(t, got, 10*time.Minute+15*time.Second)

		assert.Positive(t, addTTLJitter(5*time.Second))
	}
}
