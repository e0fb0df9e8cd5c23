package backend

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pbanos/symptree/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, location := range []string{
		"mem://",
		filepath.Join(dir, "models"),
		filepath.Join(dir, "models.db"),
	} {
		for _, opts := range []Options{{}, {CacheSize: 2}} {
			s, err := Open(ctx, location, opts)
			require.NoError(t, err, location)
			require.NoError(t, s.Put(ctx, "flu", []byte("blob")), location)
			blob, err := s.Get(ctx, "flu")
			require.NoError(t, err, location)
			assert.Equal(t, []byte("blob"), blob)
			require.NoError(t, s.Delete(ctx, "flu"), location)
			require.NoError(t, s.Close(ctx), location)
		}
	}

	for _, location := range []string{"", "ftp://models", "redis://localhost:6379/not-a-db"} {
		_, err := Open(ctx, location, Options{})
		assert.Error(t, err, location)
	}
}

func TestWith(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), "models")
	err := With(ctx, location, Options{}, func(s store.Store) error {
		return s.Put(ctx, "flu", []byte("blob"))
	})
	require.NoError(t, err)

	failure := errors.New("failure")
	err = With(ctx, location, Options{}, func(s store.Store) error {
		blob, err := s.Get(ctx, "flu")
		require.NoError(t, err)
		assert.Equal(t, []byte("blob"), blob)
		return failure
	})
	assert.True(t, errors.Is(err, failure))

	err = With(ctx, "ftp://models", Options{}, func(s store.Store) error {
		t.Fatal("function called without a store")
		return nil
	})
	assert.Error(t, err)
}
