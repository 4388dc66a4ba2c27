package reqcache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/fetchcache/pkg/future"
)

// Wildcard is the reserved key that makes Invalidate reset the whole store.
// It cannot be used as a request key.
const Wildcard = "*"

// Producer starts the operation for a key. It runs in its own goroutine
// with a context that is not cancelled when the requesting caller's is.
type Producer func(ctx context.Context) (any, error)

// Cache deduplicates operations by key.
//
// For each key at most one operation is in flight or retained while its
// entry is valid; every caller asking for that key gets the same
// *future.Future. The store is bounded by insertion order (FIFO) and
// stale entries are only dropped lazily, when their key is requested again.
//
// A Cache is safe for concurrent use.
type Cache struct {
	store   *store
	opts    *options
	metrics Metrics
	mu      sync.Mutex
}

// New creates a Cache.
//
// Example:
//
//	c := reqcache.New(
//	    reqcache.WithMode(reqcache.ModeClient),
//	    reqcache.WithDefaultTTL(30 * time.Second),
//	    reqcache.WithMaxEntries(500),
//	)
func New(opts ...Option) *Cache {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Cache{
		store: newStore(),
		opts:  o,
	}
}

// Mode returns the execution mode the Cache was created with.
func (c *Cache) Mode() Mode {
	return c.opts.mode
}

// Load returns the operation registered for key, starting fn if there is
// no usable entry.
//
// The entry is registered before fn has a chance to settle, so concurrent
// callers for the same key share one operation. A rejected operation stays
// cached like a resolved one until the entry expires or is invalidated.
//
// Invalid arguments are reported synchronously and leave the store untouched.
func (c *Cache) Load(ctx context.Context, key string, fn Producer, opts ...CallOption) (*future.Future[any], error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilProducer
	}

	ttl, err := c.resolveTTL(opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.now()

	e, ok := c.store.get(key)
	if ok && c.isValid(e, now, ttl) {
		c.metrics.Hits++
		c.opts.logger.DebugContext(ctx, "reqcache: hit", slog.String("key", key))
		return e.Call, nil
	}

	c.metrics.Misses++
	c.metrics.Calls++
	call := future.Go(ctx, fn)

	if ok {
		c.store.delete(key)
		c.metrics.Expirations++
		c.evicted(ctx, key, EvictExpired)
	}

	if c.opts.maxEntries != Unbounded {
		for c.store.len() >= c.opts.maxEntries {
			oldest, found := c.store.oldest()
			if !found {
				break
			}
			c.store.delete(oldest)
			c.metrics.Evictions++
			c.evicted(ctx, oldest, EvictCapacity)
		}
	}

	c.store.set(key, &Entry{Key: key, Call: call, CreatedAt: now})
	c.opts.logger.DebugContext(ctx, "reqcache: miss", slog.String("key", key))

	return call, nil
}

// Invalidate removes the entry for key. Absent keys are ignored.
// Passing Wildcard resets the whole store.
//
// Futures already returned to callers keep running and settle normally.
func (c *Cache) Invalidate(key string) {
	if key == Wildcard {
		c.InvalidateAll()
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.store.delete(key); ok {
		c.metrics.Invalidations++
		c.evicted(context.Background(), key, EvictInvalidated)
	}
}

// InvalidateAll replaces the store with an empty one.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := c.store.clear()
	c.metrics.Invalidations += uint64(len(dropped))
	for _, e := range dropped {
		c.evicted(context.Background(), e.Key, EvictCleared)
	}
}

// Len returns the number of stored entries, valid or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len()
}

// Has reports whether an entry for key is stored. It does not check validity.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store.get(key)
	return ok
}

// Keys returns the stored keys, oldest first.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.store.entries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Stats returns a snapshot of the stored entries and the instance metrics.
// Modifying the result does not affect the Cache.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.store.entries()
	infos := make([]EntryInfo, len(entries))
	for i, e := range entries {
		infos[i] = EntryInfo{
			Key:       e.Key,
			CreatedAt: e.CreatedAt,
			State:     e.Call.State(),
		}
	}

	return Stats{
		Count:   len(infos),
		Entries: infos,
		Metrics: c.metrics,
	}
}

// isValid applies the validity policy. Caller must hold the mutex.
func (c *Cache) isValid(e *Entry, now time.Time, ttl time.Duration) bool {
	if c.opts.mode == ModeServer {
		return true
	}
	return now.Sub(e.CreatedAt) < ttl
}

func (c *Cache) resolveTTL(opts []CallOption) (time.Duration, error) {
	if len(opts) == 0 {
		return c.opts.defaultTTL, nil
	}

	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	if !co.hasTTL {
		return c.opts.defaultTTL, nil
	}
	if co.ttl < 0 {
		return 0, ErrInvalidTTL
	}
	return co.ttl, nil
}

// evicted logs and reports a removed entry. Caller must hold the mutex.
func (c *Cache) evicted(ctx context.Context, key string, reason EvictReason) {
	c.opts.logger.DebugContext(ctx, "reqcache: entry removed",
		slog.String("key", key),
		slog.String("reason", reason.String()),
	)
	if c.opts.onEvict != nil {
		c.opts.onEvict(key, reason)
	}
}

func validateKey(key string) error {
	switch key {
	case "":
		return ErrEmptyKey
	case Wildcard:
		return ErrReservedKey
	}
	return nil
}
