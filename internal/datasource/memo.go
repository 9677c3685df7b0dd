package datasource

import "sync"

type memoEntry[V any] struct {
	value V
	err   error
}

// Memo caches the result of a computation per key, errors included. It
// lives as long as the value that owns it.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]memoEntry[V]
}

// Get returns the cached result for key, computing it on first use.
func (m *Memo[K, V]) Get(key K, compute func() (V, error)) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[key]; ok {
		return e.value, e.err
	}
	if m.entries == nil {
		m.entries = make(map[K]memoEntry[V])
	}
	v, err := compute()
	m.entries[key] = memoEntry[V]{value: v, err: err}
	return v, err
}
