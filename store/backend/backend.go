/*
Package backend opens a store.Store from a location string, choosing the
implementation from its form.
*/
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/symptree/store"
	"github.com/pbanos/symptree/store/cachestore"
	"github.com/pbanos/symptree/store/filestore"
	"github.com/pbanos/symptree/store/mongostore"
	"github.com/pbanos/symptree/store/redisstore"
	"github.com/pbanos/symptree/store/sqlstore"
)

// Options holds the settings to open a store that do not depend on its backend.
type Options struct {
	// CacheSize is the number of blobs kept in memory by a least
	// recently used cache in front of the store. 0 disables caching.
	CacheSize int
}

/*
Open takes a context, a location and options and returns the store.Store
for the location:
  - "mem://" opens an empty store in memory
  - "redis://..." opens a Redis store
  - "postgres://..." and "postgresql://..." open a PostgreSQL store
  - "mongodb://..." opens a MongoDB store
  - paths ending in ".db" open an SQLite3 store on that file
  - any other location is taken as the path to a directory of model files.
*/
func Open(ctx context.Context, location string, opts Options) (store.Store, error) {
	s, err := open(ctx, location)
	if err != nil {
		return nil, err
	}
	if opts.CacheSize > 0 {
		cs, err := cachestore.New(s, opts.CacheSize)
		if err != nil {
			s.Close(ctx)
			return nil, err
		}
		s = cs
	}
	return s, nil
}

func open(ctx context.Context, location string) (store.Store, error) {
	switch {
	case location == "":
		return nil, fmt.Errorf("no store location given")
	case location == "mem://":
		return store.NewMemoryStore(), nil
	case strings.HasPrefix(location, "redis://"):
		return redisstore.Open(ctx, location)
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return sqlstore.OpenPostgreSQL(ctx, location)
	case strings.HasPrefix(location, "mongodb://"):
		return mongostore.Open(ctx, location)
	case strings.HasSuffix(location, ".db"):
		return sqlstore.OpenSQLite3(ctx, location)
	case strings.Contains(location, "://"):
		return nil, fmt.Errorf("unsupported store location %q", location)
	}
	return filestore.New(location)
}

/*
With takes a context, a location, options and a function, opens the store
for the location, calls the function with it and closes it whatever the
function returns. It returns the error opening the store, the error
returned by the function or, if there was none, the error closing the store.
*/
func With(ctx context.Context, location string, opts Options, f func(store.Store) error) (err error) {
	s, err := Open(ctx, location, opts)
	if err != nil {
		return fmt.Errorf("opening store %s: %w", location, err)
	}
	defer func() {
		cerr := s.Close(ctx)
		if err == nil && cerr != nil {
			err = fmt.Errorf("closing store %s: %w", location, cerr)
		}
	}()
	return f(s)
}
