// Package httpclient is an HTTP client whose GET requests are deduplicated
// and cached by [reqcache].
//
// # Usage
//
//	c, err := httpclient.New("https://api.example.com",
//	    httpclient.WithCacheOptions(reqcache.WithDefaultTTL(time.Minute)),
//	)
//
//	users, err := httpclient.Get[[]User](ctx, c, "/users")
//
// Concurrent [Get] calls for the same path (and query) share a single
// request. Whether later calls reuse it depends on the cache mode:
// in reqcache.ModeServer the response is kept for the lifetime of the
// client, in reqcache.ModeClient for the validity window (zero by
// default, so nothing is kept unless configured). [WithTTL] overrides
// the window for one call.
//
// [Post], [Put], [Patch] and [Delete] always send a new request and never
// touch the cache. Invalidate explicitly after a write:
//
//	_, err = httpclient.Post[User](ctx, c, "/users", newUser)
//	c.Invalidate("/users")
//
// # Response types
//
// Bodies are decoded as JSON by default. [WithResponseType] selects
// [ResponseText] (string), [ResponseBytes] ([]byte), [ResponseYAML] or
// [ResponseRaw] (*Response). A type that cannot produce the requested
// result fails with [ErrInvalidResponseType] before any request is sent.
//
// # Errors
//
// Non-2xx responses fail with [ErrRequestFailed] joined with a
// [*StatusError] carrying the status, headers and body:
//
//	_, err := httpclient.Get[User](ctx, c, "/users/42")
//	if code, ok := httpclient.StatusCode(err); ok && code == http.StatusNotFound {
//	    // ...
//	}
//
// Network failures wrap [ErrFetchFailed]. Failed GETs are cached like
// successful ones; repeated calls inside the validity window return the
// same error without a new request.
//
// # Request IDs
//
// Every request carries an X-Request-ID header. The ID is taken from the
// context (see logger.WithRequestID) or generated, and is attached to the
// request's log records.
package httpclient
