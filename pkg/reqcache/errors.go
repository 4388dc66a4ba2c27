package reqcache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrEmptyKey is returned when an operation is requested with an empty key.
	ErrEmptyKey = errors.New("reqcache: empty key")

	// ErrReservedKey is returned when the wildcard key is used for a request.
	ErrReservedKey = errors.New("reqcache: key is reserved for invalidation")

	// ErrInvalidTTL is returned when a negative validity window is requested.
	ErrInvalidTTL = errors.New("reqcache: invalid ttl")

	// ErrInvalidMode is returned when an execution mode cannot be parsed.
	ErrInvalidMode = errors.New("reqcache: invalid mode")

	// ErrInvalidConfig is returned by NewFromConfig for invalid settings.
	ErrInvalidConfig = errors.New("reqcache: invalid config")

	// ErrNilProducer is returned when no operation function is supplied.
	ErrNilProducer = errors.New("reqcache: nil producer")

	// ErrTypeMismatch is returned when a typed read finds a value of
	// another type stored under the same key.
	ErrTypeMismatch = errors.New("reqcache: cached value has unexpected type")
)
