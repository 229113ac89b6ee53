package schedule

import (
	"sort"
	"sync"
)

// Pending handles keyed by the absolute millisecond they are due at. Each
// bucket keeps insertion order.
type store struct {
	mutex   sync.Mutex
	buckets map[int64][]*Handle
	keys    []int64 // sorted bucket keys
	size    int
}

func newStore() *store {
	return &store{buckets: make(map[int64][]*Handle)}
}

// Appends a handle to the bucket for the given timestamp.
func (s *store) insert(at int64, h *Handle) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.buckets[at]; !ok {
		i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i] >= at })
		s.keys = append(s.keys, 0)
		copy(s.keys[i+1:], s.keys[i:])
		s.keys[i] = at
	}
	h.setDue(at)
	s.buckets[at] = append(s.buckets[at], h)
	s.size++
}

// Removes and returns the bucket at exactly the given timestamp.
func (s *store) drain(at int64) []*Handle {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entries, ok := s.buckets[at]
	if !ok {
		return nil
	}
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i] >= at })
	s.keys = append(s.keys[:i], s.keys[i+1:]...)
	delete(s.buckets, at)
	s.size -= len(entries)
	return entries
}

// Removes and returns every bucket due at or before the given timestamp,
// oldest bucket first.
func (s *store) drainDue(now int64) []*Handle {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n := sort.Search(len(s.keys), func(i int) bool { return s.keys[i] > now })
	if n == 0 {
		return nil
	}
	var entries []*Handle
	for _, at := range s.keys[:n] {
		entries = append(entries, s.buckets[at]...)
		delete(s.buckets, at)
	}
	s.keys = append(s.keys[:0], s.keys[n:]...)
	s.size -= len(entries)
	return entries
}

// Returns the earliest bucket key, if any.
func (s *store) next() (int64, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.keys) == 0 {
		return 0, false
	}
	return s.keys[0], true
}

func (s *store) len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.size
}
