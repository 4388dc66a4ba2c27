package httpclient

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/fetchcache/pkg/future"
	"github.com/dmitrymomot/fetchcache/pkg/reqcache"
)

// GetAsync starts (or joins) the cached GET for path and returns a typed
// Future without waiting.
//
// Concurrent calls for the same path and query share one request. A failed
// request is cached too: calls inside the validity window observe the same
// error until the entry expires or is invalidated.
//
// An invalid response type is reported before anything is sent or cached.
func GetAsync[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*future.Future[T], error) {
	ro := newRequestOptions(opts)
	if err := checkResponseType[T](ro.responseType); err != nil {
		return nil, err
	}

	key, call, err := c.load(ctx, path, ro)
	if err != nil {
		return nil, err
	}

	return future.Then(call, func(v any) (T, error) {
		resp, err := reqcache.As[*Response](key, v)
		if err != nil {
			var zero T
			return zero, err
		}
		return decode[T](resp, ro.responseType)
	}), nil
}

// Get performs a cached GET and decodes the response into T.
//
// Example:
//
//	users, err := httpclient.Get[[]User](ctx, c, "/users")
//	if httpclient.IsNotFound(err) {
//	    // ...
//	}
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	f, err := GetAsync[T](ctx, c, path, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.Await(ctx)
}

// Post sends body as JSON. The response is never cached.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return send[T](ctx, c, http.MethodPost, path, body, opts)
}

// Put sends body as JSON. The response is never cached.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return send[T](ctx, c, http.MethodPut, path, body, opts)
}

// Patch sends body as JSON. The response is never cached.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return send[T](ctx, c, http.MethodPatch, path, body, opts)
}

// Delete sends a DELETE request. The response is never cached.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return send[T](ctx, c, http.MethodDelete, path, nil, opts)
}

// send bypasses the cache: every call is a new request.
func send[T any](ctx context.Context, c *Client, method, path string, body any, opts []RequestOption) (T, error) {
	var zero T

	ro := newRequestOptions(opts)
	if err := checkResponseType[T](ro.responseType); err != nil {
		return zero, err
	}

	resp, err := c.do(ctx, method, path, ro, body)
	if err != nil {
		return zero, err
	}
	return decode[T](resp, ro.responseType)
}

// Prefetch warms the cache for paths concurrently and waits for all of
// them. It returns the first failure; the other requests still complete
// and stay cached.
func (c *Client) Prefetch(ctx context.Context, paths ...string) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, path := range paths {
		g.Go(func() error {
			_, call, err := c.load(ctx, path, newRequestOptions(nil))
			if err != nil {
				return err
			}
			_, err = call.Await(gctx)
			return err
		})
	}

	return g.Wait()
}

// Memo runs fn at most once per key while the entry is valid, sharing the
// client's cache with GET requests. Use a key prefix that cannot collide
// with request paths.
func Memo[T any](ctx context.Context, c *Client, key string, fn func(ctx context.Context) (T, error), opts ...reqcache.CallOption) (T, error) {
	return reqcache.Memo(ctx, c.cache, key, fn, opts...)
}
