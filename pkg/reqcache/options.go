package reqcache

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/fetchcache/pkg/logger"
)

const (
	// DefaultMaxEntries is the entry bound used when WithMaxEntries is not given.
	DefaultMaxEntries = 100

	// Unbounded disables the entry bound.
	Unbounded = 0
)

// Option configures a Cache.
type Option func(*options)

type options struct {
	now        func() time.Time
	logger     *slog.Logger
	onEvict    func(key string, reason EvictReason)
	defaultTTL time.Duration
	maxEntries int
	mode       Mode
}

func defaultOptions() *options {
	return &options{
		now:        time.Now,
		logger:     logger.NewNope(),
		defaultTTL: 0, // no retention in client mode
		maxEntries: DefaultMaxEntries,
		mode:       ModeClient,
	}
}

// WithMode sets the execution mode.
// Default: ModeClient.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithDefaultTTL sets the validity window used when a request does not
// override it. Only meaningful in ModeClient. Negative values are treated as 0.
// Default: 0 (every request performs a new operation).
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		o.defaultTTL = max(d, 0)
	}
}

// WithMaxEntries sets the maximum number of entries. When the bound is
// reached the oldest inserted entry is evicted.
// Unbounded (0) or a negative value disables the bound.
// Default: DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = max(n, Unbounded)
	}
}

// WithClock sets the time source used for entry timestamps and expiry.
// Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger for cache events (debug level).
// Default: no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEvictCallback registers fn to be called whenever an entry leaves
// the store. fn runs while the cache lock is held and must not call
// back into the Cache.
func WithEvictCallback(fn func(key string, reason EvictReason)) Option {
	return func(o *options) {
		o.onEvict = fn
	}
}

// CallOption configures a single Load call.
type CallOption func(*callOptions)

type callOptions struct {
	ttl    time.Duration
	hasTTL bool
}

// WithTTL overrides the cache's default validity window for one call.
// It is ignored in ModeServer.
func WithTTL(d time.Duration) CallOption {
	return func(o *callOptions) {
		o.ttl = d
		o.hasTTL = true
	}
}
