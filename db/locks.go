package db

import "sync"

// CollectionLocks serialises load-mutate-save sequences per collection.
// A nil *CollectionLocks never blocks, which leaves concurrent writers racing
// with last-writer-wins semantics.
type CollectionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCollectionLocks() *CollectionLocks {
	return &CollectionLocks{locks: make(map[string]*sync.Mutex)}
}

// Acquire blocks until the named collection is free and returns its release func.
func (l *CollectionLocks) Acquire(name string) func() {
	if l == nil {
		return func() {}
	}

	l.mu.Lock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
