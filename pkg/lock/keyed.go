package lock

import "sync"

// KeyedMutex provides in-process exclusive locks scoped by a string key.
// Distinct keys lock independently; lock entries are dropped once the last
// holder releases, so idle keys cost nothing.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

// Lock acquires the exclusive lock for key, blocking until it is free.
func (m *KeyedMutex) Lock(key string) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &keyedEntry{}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.Lock()
}

// Unlock releases the lock for key. It must pair with a prior Lock.
func (m *KeyedMutex) Unlock(key string) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		m.mu.Unlock()
		panic("lock: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()

	e.Unlock()
}

// LockPair acquires both keys in lexical order so that two goroutines
// locking the same pair in opposite argument order cannot deadlock.
// Equal keys collapse to a single acquisition. The returned function
// releases everything acquired.
func (m *KeyedMutex) LockPair(a, b string) func() {
	if a == b {
		m.Lock(a)
		return func() { m.Unlock(a) }
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	m.Lock(first)
	m.Lock(second)
	return func() {
		m.Unlock(second)
		m.Unlock(first)
	}
}
