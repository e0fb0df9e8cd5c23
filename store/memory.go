package store

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	blobs map[string][]byte
	lock  *sync.RWMutex
}

// NewMemoryStore returns an implementation
// of Store with the process memory space
// as underlying backend
func NewMemoryStore() Store {
	return &memoryStore{
		blobs: make(map[string][]byte),
		lock:  &sync.RWMutex{},
	}
}

func (ms *memoryStore) Put(ctx context.Context, key string, blob []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	blob = append([]byte{}, blob...)
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.blobs[key] = blob
		return nil
	})
}

func (ms *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		b, ok := ms.blobs[key]
		if !ok {
			return ErrNotFound
		}
		blob = append([]byte{}, b...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (ms *memoryStore) Delete(ctx context.Context, key string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		if _, ok := ms.blobs[key]; !ok {
			return ErrNotFound
		}
		delete(ms.blobs, key)
		return nil
	})
}

func (ms *memoryStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		keys = make([]string, 0, len(ms.blobs))
		for k := range ms.blobs {
			keys = append(keys, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}
