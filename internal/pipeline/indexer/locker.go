package indexer

import (
	"context"
	"sync"
)

// Locker serializes work per key. Different keys never contend.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type keyEntry struct {
	sem  chan struct{}
	refs int
}

// KeyedMutex is the in-process Locker. Entries are dropped once nobody holds or waits on them.
type KeyedMutex struct {
	mu   sync.Mutex
	keys map[string]*keyEntry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{keys: make(map[string]*keyEntry)}
}

func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	e, ok := k.keys[key]
	if !ok {
		e = &keyEntry{sem: make(chan struct{}, 1)}
		k.keys[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		k.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			k.release(key, e)
		})
	}, nil
}

func (k *KeyedMutex) release(key string, e *keyEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.keys, key)
	}
}

func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}
