package requestlog

import (
	"sync"
	"time"
)

// Compile-time interface checks.
var (
	_ Store             = (*MemoryStore)(nil)
	_ SubscribableStore = (*MemoryStore)(nil)
)

// MemoryStore keeps entries in memory in append order.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    []*Entry
	maxEntries int
	nextSeq    uint64

	subMu       sync.RWMutex
	subscribers map[Subscriber]struct{}
}

// NewMemoryStore creates a store. maxEntries <= 0 keeps everything;
// otherwise the oldest entries are evicted once the store is full.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		maxEntries:  maxEntries,
		subscribers: make(map[Subscriber]struct{}),
	}
}

// Log appends an entry, assigning its sequence number and, when unset,
// its timestamp. The store keeps its own copy.
func (s *MemoryStore) Log(entry *Entry) {
	if entry == nil {
		return
	}

	s.mu.Lock()
	s.nextSeq++
	entry.Seq = s.nextSeq
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	stored := entry.clone()

	// FIFO eviction: remove oldest if at capacity
	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, &stored)
	s.mu.Unlock()

	// Notify subscribers (non-blocking)
	s.subMu.RLock()
	for sub := range s.subscribers {
		select {
		case sub <- stored.clone():
		default:
			// Drop if subscriber is slow
		}
	}
	s.subMu.RUnlock()
}

// List returns copies of the entries in append order.
func (s *MemoryStore) List(filter *Filter) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter != nil && !filter.matches(e) {
			continue
		}
		result = append(result, e.clone())
	}

	if filter != nil {
		if filter.Offset > 0 {
			if filter.Offset >= len(result) {
				return []Entry{}
			}
			result = result[filter.Offset:]
		}
		if filter.Limit > 0 && filter.Limit < len(result) {
			result = result[:filter.Limit]
		}
	}
	return result
}

// Clear removes all entries. Sequence numbers keep increasing.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Count returns the number of stored entries.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Subscribe registers a subscriber to receive new log entries.
func (s *MemoryStore) Subscribe() (Subscriber, func()) {
	sub := make(Subscriber, 100)

	s.subMu.Lock()
	s.subscribers[sub] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, sub)
			s.subMu.Unlock()
			close(sub)
		})
	}
	return sub, unsubscribe
}
