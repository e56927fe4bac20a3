// Package keymutex provides string-keyed mutual exclusion for serializing
// operations that share an entity identity, such as stop transitions on one
// route or an optimization round for one company.
package keymutex

import "sync"

// KeyMutex serializes goroutines per key. Distinct keys do not contend.
// The zero value is not usable; create instances with New.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// TryLock acquires the mutex for key without blocking.
// Returns false if another goroutine holds the key.
func (k *KeyMutex) TryLock(key string) bool {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	if !e.mu.TryLock() {
		k.mu.Unlock()
		return false
	}
	e.refs++
	k.mu.Unlock()
	return true
}

// Unlock releases the mutex for key. The entry is dropped once no goroutine
// holds or waits on it, so the map does not grow with the key space.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	e := k.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
