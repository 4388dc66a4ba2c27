// Package reqcache deduplicates asynchronous operations by key.
//
// A [Cache] maps a key (typically a request path) to the [future.Future]
// of the operation started for it. Callers requesting the same key while
// the entry is usable share that Future, including its failure: at most
// one operation per key is in flight or retained at a time.
//
// # Modes
//
// The validity policy is chosen explicitly at construction:
//
//   - [ModeClient] (default): an entry is usable while
//     now - createdAt < ttl. The default TTL is zero, so nothing is
//     retained unless configured with [WithDefaultTTL] or a per-call
//     [WithTTL].
//   - [ModeServer]: an entry is usable for the lifetime of the Cache,
//     whatever the TTL. Create one Cache per request or session and drop
//     it afterwards.
//
// # Usage
//
//	c := reqcache.New(
//	    reqcache.WithDefaultTTL(time.Minute),
//	    reqcache.WithMaxEntries(500),
//	)
//
//	f, err := c.Load(ctx, "/users", func(ctx context.Context) (any, error) {
//	    return fetchUsers(ctx)
//	})
//	if err != nil {
//	    return err // invalid key or ttl, nothing was started
//	}
//	users, err := f.Await(ctx)
//
// [Memo] and [MemoAsync] are typed wrappers for arbitrary computations.
//
// # Eviction
//
// The store is bounded by [WithMaxEntries] (default [DefaultMaxEntries];
// [Unbounded] disables the bound). When full, the oldest inserted entry
// is evicted before a new one is added. Reads never reorder entries.
// There is no background sweep: an expired entry stays in the store
// until its key is requested again or it is evicted.
//
// # Invalidation
//
// [Cache.Invalidate] removes one key; the reserved [Wildcard] key resets
// the store. Futures already handed out still settle for their holders.
//
// # Failures
//
// A rejected operation is retained like a successful one. Requests within
// the validity window observe the same error again; there is no automatic
// retry. Argument errors ([ErrEmptyKey], [ErrReservedKey], [ErrInvalidTTL],
// [ErrNilProducer]) are returned synchronously and never stored.
package reqcache
