// Package keylock provides per-key read/write locking so operations on
// unrelated keys never contend.
package keylock

import "sync"

// KeyedRWMutex is a lazily-populated set of RWMutexes, one per key.
// Same-key operations serialize; different keys proceed independently.
type KeyedRWMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// New creates a new KeyedRWMutex
func New() *KeyedRWMutex {
	return &KeyedRWMutex{
		locks: make(map[string]*sync.RWMutex),
	}
}

func (k *KeyedRWMutex) get(key string) *sync.RWMutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if m, ok := k.locks[key]; ok {
		return m
	}
	m := &sync.RWMutex{}
	k.locks[key] = m
	return m
}

// Lock takes the exclusive lock for key.
func (k *KeyedRWMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the exclusive lock for key.
func (k *KeyedRWMutex) Unlock(key string) {
	k.get(key).Unlock()
}

// RLock takes the shared lock for key.
func (k *KeyedRWMutex) RLock(key string) {
	k.get(key).RLock()
}

// RUnlock releases the shared lock for key.
func (k *KeyedRWMutex) RUnlock(key string) {
	k.get(key).RUnlock()
}
