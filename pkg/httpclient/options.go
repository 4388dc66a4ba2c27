package httpclient

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/fetchcache/pkg/reqcache"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultRequestIDHeader = "X-Request-ID"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient      *http.Client
	cache           *reqcache.Cache
	logger          *slog.Logger
	headers         http.Header
	requestIDHeader string
	cacheOpts       []reqcache.Option
	timeout         time.Duration
	timeoutSet      bool
}

func defaultOptions() *options {
	h := make(http.Header)
	h.Set("Accept", "application/json")

	return &options{
		headers:         h,
		timeout:         defaultTimeout,
		requestIDHeader: defaultRequestIDHeader,
	}
}

// WithHTTPClient sets the HTTP client used for requests.
// Useful for httptest servers or custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
// Default: 30 seconds. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = max(d, 0)
		o.timeoutSet = true
	}
}

// WithHeader adds a header sent with every request.
// Default: Accept: application/json.
func WithHeader(key, value string) Option {
	return func(o *options) {
		o.headers.Set(key, value)
	}
}

// WithCache uses an existing cache instead of creating one.
// Several clients may share a cache; keys are request paths, so prefix
// them (different base paths) when clients talk to different hosts.
func WithCache(c *reqcache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithCacheOptions configures the cache created by New.
// Ignored when WithCache is given.
func WithCacheOptions(opts ...reqcache.Option) Option {
	return func(o *options) {
		o.cacheOpts = append(o.cacheOpts, opts...)
	}
}

// WithLogger sets the logger for request and cache events.
// Default: no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRequestIDHeader sets the header carrying the request ID.
// Default: X-Request-ID. An empty name disables the header.
func WithRequestIDHeader(name string) Option {
	return func(o *options) {
		o.requestIDHeader = name
	}
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	query        url.Values
	headers      http.Header
	ttl          time.Duration
	hasTTL       bool
	responseType ResponseType
}

func newRequestOptions(opts []RequestOption) *requestOptions {
	ro := &requestOptions{responseType: ResponseJSON}
	for _, opt := range opts {
		opt(ro)
	}
	return ro
}

func (ro *requestOptions) callOptions() []reqcache.CallOption {
	if !ro.hasTTL {
		return nil
	}
	return []reqcache.CallOption{reqcache.WithTTL(ro.ttl)}
}

// WithTTL overrides the cache validity window for a GET request.
// Ignored for other verbs and in server mode.
func WithTTL(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		o.ttl = d
		o.hasTTL = true
	}
}

// WithQuery adds query parameters. They are part of the cache key.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = make(url.Values, len(q))
		}
		for k, vs := range q {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithRequestHeader sets a header for this request only.
// Headers are not part of the cache key.
func WithRequestHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(http.Header)
		}
		o.headers.Set(key, value)
	}
}

// WithResponseType selects how the response body is decoded.
// Default: ResponseJSON.
func WithResponseType(rt ResponseType) RequestOption {
	return func(o *requestOptions) {
		o.responseType = rt
	}
}
