package model

import (
	"context"
	"fmt"

	"github.com/pbanos/symptree"
	"github.com/pbanos/symptree/feature"
	"github.com/pbanos/symptree/store"
)

// Put takes a context, a store, a key and an ensemble and saves the
// ensemble blob on the store under the key.
func Put(ctx context.Context, s store.Store, key string, e *symptree.Ensemble) error {
	blob, err := Save(e)
	if err != nil {
		return err
	}
	if err = s.Put(ctx, key, blob); err != nil {
		return fmt.Errorf("storing model %s: %w", key, err)
	}
	return nil
}

/*
Get takes a context, a store, a key and a schema and returns the ensemble
stored under the key. If schema is not nil, the ensemble must have been
trained for it. It returns store.ErrNotFound if there is no blob for the
key and the errors of Load and LoadFor otherwise.
*/
func Get(ctx context.Context, s store.Store, key string, schema *feature.Schema) (*symptree.Ensemble, error) {
	blob, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("retrieving model %s: %w", key, err)
	}
	if schema == nil {
		return Load(blob)
	}
	return LoadFor(blob, schema)
}
