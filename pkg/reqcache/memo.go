package reqcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/fetchcache/pkg/future"
)

// MemoAsync is the typed form of Cache.Load. It registers fn under key
// (or reuses the existing entry) and returns a typed view of the shared
// operation without waiting for it.
//
// Keys share one namespace with every other user of c; prefix them when
// unrelated operations could pick the same name.
func MemoAsync[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error), opts ...CallOption) (*future.Future[T], error) {
	if fn == nil {
		return nil, ErrNilProducer
	}

	call, err := c.Load(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	}, opts...)
	if err != nil {
		return nil, err
	}

	return future.Then(call, func(v any) (T, error) {
		return As[T](key, v)
	}), nil
}

// Memo is like MemoAsync but waits for the result.
//
// Example:
//
//	user, err := reqcache.Memo(ctx, c, "user:123", func(ctx context.Context) (*User, error) {
//	    return repo.FindUser(ctx, "123")
//	}, reqcache.WithTTL(time.Minute))
func Memo[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error), opts ...CallOption) (T, error) {
	f, err := MemoAsync(ctx, c, key, fn, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.Await(ctx)
}

// As converts a value stored under key to T.
// A nil value converts to the zero T.
func As[T any](key string, v any) (T, error) {
	if v == nil {
		var zero T
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, errors.Join(ErrTypeMismatch, fmt.Errorf("key %q holds %T, want %T", key, v, zero))
	}
	return typed, nil
}
