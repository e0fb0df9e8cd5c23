/*
Package cachestore provides a store.Store that keeps the most recently
used blobs of another store in memory.
*/
package cachestore

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pbanos/symptree/store"
)

type cacheStore struct {
	store.Store
	cache *lru.Cache
}

/*
New takes a store and a size and returns a store.Store that reads through
to the given store, keeping up to size blobs in a least recently used
cache. Writes and deletions go to the given store and update the cache.
It returns an error if size is not positive.
*/
func New(s store.Store, size int) (store.Store, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating model cache: %v", err)
	}
	return &cacheStore{s, cache}, nil
}

func (cs *cacheStore) Put(ctx context.Context, key string, blob []byte) error {
	if err := cs.Store.Put(ctx, key, blob); err != nil {
		cs.cache.Remove(key)
		return err
	}
	cs.cache.Add(key, append([]byte{}, blob...))
	return nil
}

func (cs *cacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cached, ok := cs.cache.Get(key); ok {
		return append([]byte{}, cached.([]byte)...), nil
	}
	blob, err := cs.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	cs.cache.Add(key, append([]byte{}, blob...))
	return blob, nil
}

func (cs *cacheStore) Delete(ctx context.Context, key string) error {
	cs.cache.Remove(key)
	return cs.Store.Delete(ctx, key)
}

func (cs *cacheStore) Close(ctx context.Context) error {
	cs.cache.Purge()
	return cs.Store.Close(ctx)
}
