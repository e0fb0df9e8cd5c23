package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pbanos/symptree/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("SYMPTREE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SYMPTREE_TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rc := redis.NewClient(opts)
	s := New(rc, "symptree-test:"+uuid.NewString())
	defer s.Close(context.Background())
	storetest.Run(t, s)
}

func TestRedisStoreKeysWithGlobPrefix(t *testing.T) {
	url := os.Getenv("SYMPTREE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SYMPTREE_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rc := redis.NewClient(opts)
	defer rc.Close()
	id := uuid.NewString()
	glob := New(rc, "symptree-test:*"+id)
	sibling := New(rc, "symptree-test:x"+id)
	require.NoError(t, glob.Put(ctx, "flu", []byte("v1")))
	require.NoError(t, sibling.Put(ctx, "cold", []byte("v1")))
	defer glob.Delete(ctx, "flu")
	defer sibling.Delete(ctx, "cold")

	keys, err := glob.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"flu"}, keys)
}

func TestOpenInvalidURL(t *testing.T) {
	_, err := Open(context.Background(), "http://localhost:6379")
	assert.Error(t, err)
}

func TestKeyFor(t *testing.T) {
	rs := &redisStore{prefix: DefaultPrefix}
	assert.Equal(t, "symptree:models:flu", rs.keyFor("flu"))
}

func TestEscapePattern(t *testing.T) {
	assert.Equal(t, "symptree:models:", escapePattern("symptree:models:"))
	assert.Equal(t, `a\*b\?c\[d\]e\\f:`, escapePattern(`a*b?c[d]e\f:`))
}
