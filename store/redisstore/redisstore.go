/*
Package redisstore provides an implementation of store.Store that keeps
blobs in a Redis database under prefixed keys.
*/
package redisstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/symptree/store"
	"gopkg.in/redis.v5"
)

// DefaultPrefix is the prefix for the Redis keys of stores opened with Open.
const DefaultPrefix = "symptree:models"

const scanCount = 100

type redisStore struct {
	rc     *redis.Client
	prefix string
}

// New builds a store.Store backed by a redis DB
// that saves blobs under keys with the given prefix
func New(rc *redis.Client, prefix string) store.Store {
	return &redisStore{rc, prefix}
}

/*
Open takes a context and a Redis URL (redis://[:password@]host[:port][/db])
and returns a store.Store on the database it points to with the
DefaultPrefix, or an error if the URL is invalid or the server cannot be
reached.
*/
func Open(ctx context.Context, url string) (store.Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %v", err)
	}
	rc := redis.NewClient(opts)
	if err = rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis: %v", err)
	}
	return New(rc, DefaultPrefix), nil
}

func (rs *redisStore) Put(ctx context.Context, key string, blob []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	redisKey := rs.keyFor(key)
	_, err := rs.rc.Set(redisKey, blob, 0).Result()
	if err != nil {
		return fmt.Errorf("storing model %q in redis: %v", redisKey, err)
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := rs.rc.Get(rs.keyFor(key)).Bytes()
	if err == redis.Nil {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: %v", key, err)
	}
	return blob, nil
}

func (rs *redisStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisKey := rs.keyFor(key)
	n, err := rs.rc.Del(redisKey).Result()
	if err != nil {
		return fmt.Errorf("deleting model %q from redis: %v", redisKey, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (rs *redisStore) Keys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		keys   = []string{}
		match  = escapePattern(rs.keyFor("")) + "*"
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, next, err := rs.rc.Scan(cursor, match, scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("listing models in redis: %v", err)
		}
		for _, k := range page {
			keys = append(keys, strings.TrimPrefix(k, rs.keyFor("")))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

// escapePattern escapes the characters SCAN MATCH patterns give a meaning to.
func escapePattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
