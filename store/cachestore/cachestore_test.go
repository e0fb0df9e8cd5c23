package cachestore

import (
	"context"
	"errors"
	"testing"

	"github.com/pbanos/symptree/store"
	"github.com/pbanos/symptree/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	store.Store
	gets int
}

func (cs *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	cs.gets++
	return cs.Store.Get(ctx, key)
}

func TestCacheStore(t *testing.T) {
	s, err := New(store.NewMemoryStore(), 4)
	require.NoError(t, err)
	storetest.Run(t, s)
	assert.NoError(t, s.Close(context.Background()))
}

func TestCacheStoreReadsThrough(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Store: store.NewMemoryStore()}
	require.NoError(t, backend.Put(ctx, "flu", []byte("v1")))
	require.NoError(t, backend.Put(ctx, "cold", []byte("v1")))
	require.NoError(t, backend.Put(ctx, "measles", []byte("v1")))

	s, err := New(backend, 2)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		blob, err := s.Get(ctx, "flu")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), blob)
	}
	assert.Equal(t, 1, backend.gets)

	_, err = s.Get(ctx, "cold")
	require.NoError(t, err)
	_, err = s.Get(ctx, "measles")
	require.NoError(t, err)
	_, err = s.Get(ctx, "flu")
	require.NoError(t, err)
	assert.Equal(t, 4, backend.gets, "flu was evicted")

	require.NoError(t, s.Put(ctx, "flu", []byte("v2")))
	blob, err := s.Get(ctx, "flu")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), blob)
	assert.Equal(t, 4, backend.gets)

	require.NoError(t, s.Delete(ctx, "flu"))
	_, err = s.Get(ctx, "flu")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestCacheStoreGetHonoursContext(t *testing.T) {
	ctx := context.Background()
	s, err := New(store.NewMemoryStore(), 2)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "flu", []byte("v1")))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Get(cancelled, "flu")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCacheStoreInvalidSize(t *testing.T) {
	_, err := New(store.NewMemoryStore(), 0)
	assert.Error(t, err)
}
