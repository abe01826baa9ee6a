// Package cache provides a bounded, memoizing in-memory cache with LRU
// eviction. It backs the resolver, snapshot, and news lookups so that
// repeat calls to slow or rate-limited collaborators are avoided.
package cache

import (
	"container/list"
	"sync"
)

// Memo is a thread-safe key/value memo cache with a fixed capacity.
// When the capacity would be exceeded, the least-recently-used entry is
// evicted. Entries never expire on their own; there is no TTL.
type Memo[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*list.Element
	order    *list.List // front = most recently used
}

type memoEntry[K comparable, V any] struct {
	key   K
	value V
}

// New creates a Memo with the given capacity. Capacity must be positive;
// values below 1 are clamped to 1.
func New[K comparable, V any](capacity int) *Memo[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Memo[K, V]{
		capacity: capacity,
		entries:  make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the stored value for key and promotes the entry to
// most-recently-used.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		m.order.MoveToFront(el)
		return el.Value.(*memoEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores a value under key, evicting the least-recently-used entry
// if the cache is full.
func (m *Memo[K, V]) Put(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(key, value)
}

// put inserts or updates an entry. Must be called with mu held.
func (m *Memo[K, V]) put(key K, value V) {
	if el, ok := m.entries[key]; ok {
		el.Value.(*memoEntry[K, V]).value = value
		m.order.MoveToFront(el)
		return
	}

	if m.order.Len() >= m.capacity {
		oldest := m.order.Back()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoEntry[K, V]).key)
		}
	}
	m.entries[key] = m.order.PushFront(&memoEntry[K, V]{key: key, value: value})
}

// GetOrCompute returns the cached value for key, or invokes compute and
// stores its result. Errors from compute are returned and not cached.
//
// The lock is not held while compute runs, so two callers racing on the
// same uncached key may both compute; the second store wins. That
// duplicate work is accepted in exchange for never blocking readers
// behind a slow upstream call.
func (m *Memo[K, V]) GetOrCompute(key K, compute func(K) (V, error)) (V, error) {
	if v, ok := m.Get(key); ok {
		return v, nil
	}

	v, err := compute(key)
	if err != nil {
		var zero V
		return zero, err
	}

	m.mu.Lock()
	m.put(key, v)
	m.mu.Unlock()
	return v, nil
}

// Len returns the number of cached entries.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
