package reqcache

import (
	"container/list"
	"time"

	"github.com/dmitrymomot/fetchcache/pkg/future"
)

// Entry pairs a cache key with the shared operation registered for it.
// An Entry is never mutated; a new request for an unusable key replaces it.
type Entry struct {
	CreatedAt time.Time
	Call      *future.Future[any]
	Key       string
}

// store is an insertion-ordered map of entries.
//
// The front of the list is the oldest entry, the back the newest.
// Reads never reorder entries. It knows nothing about time or capacity;
// the Cache owns those policies and the locking.
type store struct {
	items map[string]*list.Element
	order *list.List
}

func newStore() *store {
	return &store{
		items: make(map[string]*list.Element),
		order: list.New(),
	}
}

func (s *store) get(key string) (*Entry, bool) {
	elem, ok := s.items[key]
	if !ok {
		return nil, false
	}
	return elem.Value.(*Entry), true
}

// set inserts e at the back of the order. An existing entry for the
// same key is removed first, so a replaced key counts as newly inserted.
func (s *store) set(key string, e *Entry) {
	if elem, ok := s.items[key]; ok {
		s.order.Remove(elem)
	}
	s.items[key] = s.order.PushBack(e)
}

func (s *store) delete(key string) (*Entry, bool) {
	elem, ok := s.items[key]
	if !ok {
		return nil, false
	}
	s.order.Remove(elem)
	delete(s.items, key)
	return elem.Value.(*Entry), true
}

// clear swaps in empty containers and returns the dropped entries,
// oldest first. Futures already handed out are not affected.
func (s *store) clear() []*Entry {
	dropped := s.entries()
	s.items = make(map[string]*list.Element)
	s.order = list.New()
	return dropped
}

func (s *store) len() int {
	return len(s.items)
}

// oldest returns the key that would be evicted next.
func (s *store) oldest() (string, bool) {
	elem := s.order.Front()
	if elem == nil {
		return "", false
	}
	return elem.Value.(*Entry).Key, true
}

func (s *store) entries() []*Entry {
	out := make([]*Entry, 0, s.order.Len())
	for elem := s.order.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(*Entry))
	}
	return out
}
