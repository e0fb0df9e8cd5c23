/*
Package storetest provides a conformance test suite for implementations of
store.Store.
*/
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/pbanos/symptree/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
Run takes a testing.T and an empty store and checks the store behaves as
every store.Store implementation must. The store is not closed.
*/
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound), "get missing: %v", err)
	err = s.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound), "delete missing: %v", err)

	blob := []byte("SYMT\x01\x00binary\xffpayload")
	require.NoError(t, s.Put(ctx, "influenza", blob))
	require.NoError(t, s.Put(ctx, "allergies", []byte("first")))
	require.NoError(t, s.Put(ctx, "allergies", []byte("second")))

	got, err := s.Get(ctx, "influenza")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
	got[0] = 'X'
	got, err = s.Get(ctx, "influenza")
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	got, err = s.Get(ctx, "allergies")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"allergies", "influenza"}, keys)

	require.NoError(t, s.Delete(ctx, "allergies"))
	_, err = s.Get(ctx, "allergies")
	assert.True(t, errors.Is(err, store.ErrNotFound))
	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"influenza"}, keys)

	for _, key := range []string{"", ".hidden", "a/b", `a\b`, "a:b"} {
		assert.Error(t, s.Put(ctx, key, blob), "key %q", key)
	}
}
