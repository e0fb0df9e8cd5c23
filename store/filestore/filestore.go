/*
Package filestore provides an implementation of store.Store that keeps
every blob in its own file in a directory.
*/
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pbanos/symptree/store"
)

const extension = ".model"

type fileStore struct {
	dir string
}

/*
New takes a path to a directory and returns a store.Store that saves blobs
as files in it, creating the directory if it does not exist, or an error
if it cannot be created.
*/
func New(dir string) (store.Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating model directory %s: %v", dir, err)
	}
	return &fileStore{dir}, nil
}

/*
Put writes the blob to a temporary file in the store directory and renames
it to the file for the key, so readers never see a partially written blob.
*/
func (fs *fileStore) Put(ctx context.Context, key string, blob []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.CreateTemp(fs.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %q: %v", key, err)
	}
	tmpPath := f.Name()
	defer os.Remove(tmpPath)
	_, err = f.Write(blob)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %q: %v", key, err)
	}
	if err = os.Rename(tmpPath, fs.path(key)); err != nil {
		return fmt.Errorf("writing %q: %v", key, err)
	}
	return nil
}

func (fs *fileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if store.ValidateKey(key) != nil {
		return nil, store.ErrNotFound
	}
	blob, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %v", key, err)
	}
	return blob, nil
}

func (fs *fileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if store.ValidateKey(key) != nil {
		return store.ErrNotFound
	}
	err := os.Remove(fs.path(key))
	if os.IsNotExist(err) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting %q: %v", key, err)
	}
	return nil
}

func (fs *fileStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %v", fs.dir, err)
	}
	keys := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() && !strings.HasPrefix(name, ".") && strings.HasSuffix(name, extension) {
			keys = append(keys, strings.TrimSuffix(name, extension))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (fs *fileStore) Close(ctx context.Context) error {
	return nil
}

func (fs *fileStore) path(key string) string {
	return filepath.Join(fs.dir, key+extension)
}
