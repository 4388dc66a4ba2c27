package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fetchcache/pkg/future"
	"github.com/dmitrymomot/fetchcache/pkg/logger"
	"github.com/dmitrymomot/fetchcache/pkg/reqcache"
)

// Client issues HTTP requests against a base URL.
// GET requests go through a reqcache.Cache; other verbs are sent as-is.
type Client struct {
	http            *http.Client
	cache           *reqcache.Cache
	logger          *slog.Logger
	headers         http.Header
	baseURL         string
	requestIDHeader string
}

// New creates a Client for baseURL.
// Returns ErrInvalidBaseURL if baseURL is empty or not an absolute http(s) URL.
//
// Example:
//
//	c, err := httpclient.New("https://api.example.com",
//	    httpclient.WithHeader("Authorization", "Bearer "+token),
//	    httpclient.WithCacheOptions(
//	        reqcache.WithDefaultTTL(time.Minute),
//	        reqcache.WithMaxEntries(500),
//	    ),
//	)
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if baseURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, fmt.Errorf("base url %q", baseURL))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.NewNope()
	}

	httpClient := o.httpClient
	switch {
	case httpClient == nil:
		httpClient = &http.Client{Timeout: o.timeout}
	case o.timeoutSet:
		clone := *httpClient
		clone.Timeout = o.timeout
		httpClient = &clone
	}

	cache := o.cache
	if cache == nil {
		cache = reqcache.New(append([]reqcache.Option{reqcache.WithLogger(o.logger)}, o.cacheOpts...)...)
	}

	return &Client{
		http:            httpClient,
		cache:           cache,
		logger:          o.logger,
		headers:         o.headers,
		baseURL:         strings.TrimRight(baseURL, "/"),
		requestIDHeader: o.requestIDHeader,
	}, nil
}

// Cache returns the cache backing GET requests.
func (c *Client) Cache() *reqcache.Cache {
	return c.cache
}

// Invalidate drops the cached GET for key (see CacheKey).
// reqcache.Wildcard drops everything.
func (c *Client) Invalidate(key string) {
	c.cache.Invalidate(key)
}

// InvalidateAll drops every cached GET.
func (c *Client) InvalidateAll() {
	c.cache.InvalidateAll()
}

// Stats returns a snapshot of the cache.
func (c *Client) Stats() reqcache.Stats {
	return c.cache.Stats()
}

// CacheKey returns the cache key used for a GET of path with query.
func CacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + query.Encode()
}

// load returns the shared GET operation for path.
func (c *Client) load(ctx context.Context, path string, ro *requestOptions) (string, *future.Future[any], error) {
	key := CacheKey(path, ro.query)
	call, err := c.cache.Load(ctx, key, func(ctx context.Context) (any, error) {
		return c.do(ctx, http.MethodGet, path, ro, nil)
	}, ro.callOptions()...)
	return key, call, err
}

// do sends one request and reads the full response.
// Non-2xx responses are returned as ErrRequestFailed joined with *StatusError.
func (c *Client) do(ctx context.Context, method, path string, ro *requestOptions, body any) (*Response, error) {
	target := c.resolve(path, ro.query)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Join(ErrEncodeFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	reqID, ok := logger.RequestID(ctx)
	if !ok {
		reqID = uuid.NewString()
		ctx = logger.WithRequestID(ctx, reqID)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}
	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range ro.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, reqID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "httpclient: request failed",
			slog.String("method", method),
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("%s %s: %w", method, target, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("read body: %w", err))
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
	}

	c.logger.DebugContext(ctx, "httpclient: request done",
		slog.String("method", method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "httpclient: non-success status",
			slog.String("method", method),
			slog.String("url", target),
			slog.Int("status", resp.StatusCode),
		)
		return nil, errors.Join(ErrRequestFailed, &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header,
			Body:       data,
		})
	}

	return out, nil
}

// resolve builds the absolute URL for path. Absolute http(s) URLs are used as-is.
func (c *Client) resolve(path string, query url.Values) string {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}
	return CacheKey(target, query)
}
