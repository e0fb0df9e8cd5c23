/*
Package store defines the Store interface for durable storage of model
blobs and provides an implementation backed by process memory.

Implementations backed by files, Redis, SQL databases and MongoDB live in
the subpackages, and the backend subpackage opens any of them from a URL.
*/
package store

import (
	"context"
	"fmt"
	"strings"
)

/*
Store is an interface to manage a store where
model blobs can be saved, retrieved and deleted
by key.

All its methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type Store interface {
	// Put takes a key and a blob and saves the blob
	// under the key, replacing any blob already saved
	// under it. It returns an error if the key is not
	// valid or the blob cannot be saved.
	Put(ctx context.Context, key string, blob []byte) error
	// Get takes a key and returns the blob saved under
	// it, ErrNotFound if there is none or an error if the
	// store cannot be queried.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete takes a key and deletes the blob saved under
	// it. It returns ErrNotFound if there is none or an
	// error if the deletion cannot be performed.
	Delete(ctx context.Context, key string) error
	// Keys returns the sorted keys of all blobs in the
	// store or an error if the store cannot be queried.
	Keys(ctx context.Context) ([]string, error)
	// Close closes the store, implementations should
	// free any resources in use as well as ensure
	// any pending changes are applied before returning
	// (unless the context expires). It returns an error
	// if the Close cannot be completed (because of the
	// context or another error)
	Close(ctx context.Context) error
}

// Error represents an error related with stores
type Error string

/*
ErrNotFound is the error returned by stores when there is no blob saved
under the requested key.
*/
const ErrNotFound = Error("model not found")

func (e Error) Error() string {
	return string(e)
}

/*
ValidateKey returns an error if the given key cannot be used with every
Store implementation: it must not be empty or longer than 200 bytes, start
with a dot or contain slashes, backslashes or colons.
*/
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("invalid key: empty")
	case len(key) > 200:
		return fmt.Errorf("invalid key %q: longer than 200 bytes", key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("invalid key %q: starts with a dot", key)
	case strings.ContainsAny(key, `/\:`):
		return fmt.Errorf(`invalid key %q: contains any of "/", "\", ":"`, key)
	}
	return nil
}
