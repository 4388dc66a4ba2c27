package reqcache

import (
	"time"

	"github.com/dmitrymomot/fetchcache/pkg/future"
)

// EvictReason tells why an entry left the store.
type EvictReason uint8

const (
	// EvictExpired: the entry was no longer valid and a new request replaced it.
	EvictExpired EvictReason = iota + 1
	// EvictCapacity: the store was full and the entry was the oldest one.
	EvictCapacity
	// EvictInvalidated: the key was invalidated explicitly.
	EvictInvalidated
	// EvictCleared: the whole store was reset.
	EvictCleared
)

func (r EvictReason) String() string {
	switch r {
	case EvictExpired:
		return "expired"
	case EvictCapacity:
		return "capacity"
	case EvictInvalidated:
		return "invalidated"
	case EvictCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// EntryInfo is a read-only description of a stored entry.
type EntryInfo struct {
	CreatedAt time.Time
	Key       string
	State     future.State
}

// Metrics are per-instance counters.
type Metrics struct {
	// Hits counts requests served by an existing entry.
	Hits uint64
	// Misses counts requests that created a new entry.
	Misses uint64
	// Calls counts operations started. Equal to Misses.
	Calls uint64
	// Evictions counts entries removed to respect the size bound.
	Evictions uint64
	// Expirations counts stale entries replaced on request.
	Expirations uint64
	// Invalidations counts entries removed by Invalidate, including
	// each entry dropped by a wildcard reset.
	Invalidations uint64
}

// Stats is a point-in-time snapshot of a Cache.
// Entries are ordered oldest first and are copies.
type Stats struct {
	Entries []EntryInfo
	Metrics Metrics
	Count   int
}

// Lookup returns the entry info for key, if present in the snapshot.
func (s Stats) Lookup(key string) (EntryInfo, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return EntryInfo{}, false
}
