package reqcache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fetchcache/pkg/reqcache"
)

// --- Memo ---

func TestMemo(t *testing.T) {
	t.Parallel()

	t.Run("computes once and reuses result", func(t *testing.T) {
		t.Parallel()

		c := reqcache.New(reqcache.WithMode(reqcache.ModeServer))
		ctx := context.Background()

		var calls atomic.Int64
		fn := func(_ context.Context) (int, error) {
			calls.Add(1)
			return 42, nil
		}

		for range 3 {
			val, err := reqcache.Memo(ctx, c, "answer", fn)
			require.NoError(t, err)
			require.Equal(t, 42, val)
		}
		require.Equal(t, int64(1), calls.Load())
	})

	t.Run("deduplicates concurrent calls", func(t *testing.T) {
		t.Parallel()

		c := reqcache.New(reqcache.WithDefaultTTL(time.Minute))
		ctx := context.Background()

		var calls atomic.Int64
		var wg sync.WaitGroup

		for range 10 {
			wg.Go(func() {
				val, err := reqcache.Memo(ctx, c, "dedup", func(_ context.Context) (string, error) {
					calls.Add(1)
					time.Sleep(10 * time.Millisecond) // Simulate slow computation.
					return "value", nil
				})
				require.NoError(t, err)
				require.Equal(t, "value", val)
			})
		}

		wg.Wait()
		require.Equal(t, int64(1), calls.Load())
	})

	t.Run("returns and retains error", func(t *testing.T) {
		t.Parallel()

		c := reqcache.New(reqcache.WithMode(reqcache.ModeServer))
		ctx := context.Background()

		var calls atomic.Int64
		testErr := errors.New("compute failed")
		fn := func(_ context.Context) (string, error) {
			calls.Add(1)
			return "", testErr
		}

		_, err := reqcache.Memo(ctx, c, "key", fn)
		require.ErrorIs(t, err, testErr)
		_, err = reqcache.Memo(ctx, c, "key", fn)
		require.ErrorIs(t, err, testErr)

		require.Equal(t, int64(1), calls.Load())
	})

	t.Run("type mismatch on shared key", func(t *testing.T) {
		t.Parallel()

		c := reqcache.New(reqcache.WithMode(reqcache.ModeServer))
		ctx := context.Background()

		_, err := reqcache.Memo(ctx, c, "shared", func(_ context.Context) (int, error) {
			return 1, nil
		})
		require.NoError(t, err)

		_, err = reqcache.Memo(ctx, c, "shared", func(_ context.Context) (string, error) {
			return "never called", nil
		})
		require.ErrorIs(t, err, reqcache.ErrTypeMismatch)
	})

	t.Run("nil result converts to zero value", func(t *testing.T) {
		t.Parallel()

		c := reqcache.New(reqcache.WithMode(reqcache.ModeServer))

		val, err := reqcache.Memo(context.Background(), c, "nil", func(_ context.Context) (*struct{}, error) {
			return nil, nil
		})
		require.NoError(t, err)
		require.Nil(t, val)
	})

	t.Run("nil fn", func(t *testing.T) {
		t.Parallel()

		c := reqcache.New()
		_, err := reqcache.Memo[int](context.Background(), c, "k", nil)
		require.ErrorIs(t, err, reqcache.ErrNilProducer)
	})

	t.Run("rejects reserved key", func(t *testing.T) {
		t.Parallel()

		c := reqcache.New()
		_, err := reqcache.Memo(context.Background(), c, reqcache.Wildcard, func(_ context.Context) (int, error) {
			return 1, nil
		})
		require.ErrorIs(t, err, reqcache.ErrReservedKey)
	})

	t.Run("respects caller context while waiting", func(t *testing.T) {
		t.Parallel()

		c := reqcache.New(reqcache.WithMode(reqcache.ModeServer))
		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := reqcache.Memo(ctx, c, "slow", func(_ context.Context) (int, error) {
			<-release
			return 1, nil
		})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.True(t, c.Has("slow"))
	})
}

func TestMemoAsync(t *testing.T) {
	t.Parallel()

	c := reqcache.New(reqcache.WithMode(reqcache.ModeServer))
	ctx := context.Background()

	release := make(chan struct{})
	f1, err := reqcache.MemoAsync(ctx, c, "async", func(_ context.Context) (string, error) {
		<-release
		return "done", nil
	})
	require.NoError(t, err)
	require.False(t, f1.Settled())

	f2, err := reqcache.MemoAsync(ctx, c, "async", func(_ context.Context) (string, error) {
		t.Fatal("fn should not be called for a pending entry")
		return "", nil
	})
	require.NoError(t, err)

	close(release)

	v1, err := f1.Await(ctx)
	require.NoError(t, err)
	v2, err := f2.Await(ctx)
	require.NoError(t, err)
	require.Equal(t, "done", v1)
	require.Equal(t, v1, v2)
}

func TestAs(t *testing.T) {
	t.Parallel()

	v, err := reqcache.As[int]("k", 5)
	require.NoError(t, err)
	require.Equal(t, 5, v)

	_, err = reqcache.As[int]("k", "five")
	require.ErrorIs(t, err, reqcache.ErrTypeMismatch)
	require.Contains(t, err.Error(), `"k"`)

	s, err := reqcache.As[string]("k", nil)
	require.NoError(t, err)
	require.Empty(t, s)
}
