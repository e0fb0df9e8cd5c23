/*
Package sqlstore provides an implementation of store.Store that keeps
blobs in a models table of an SQL database, with adapters for SQLite3 and
PostgreSQL.
*/
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pbanos/symptree/store"
)

/*
Adapter is an interface providing the statements that differ between the
SQL databases a Store can work on.
*/
type Adapter interface {
	// DriverName returns the name of the database/sql driver to use.
	DriverName() string
	// CreateTableStmt returns the statement creating the models table if it does not exist.
	CreateTableStmt() string
	// UpsertStmt returns the statement saving a blob (second argument) under a key (first argument).
	UpsertStmt() string
	// SelectStmt returns the statement retrieving the blob for a key.
	SelectStmt() string
	// DeleteStmt returns the statement deleting the blob for a key.
	DeleteStmt() string
}

const keysStmt = `SELECT id FROM models ORDER BY id`

type sqlStore struct {
	db      *sql.DB
	adapter Adapter
}

/*
Open takes a context, an Adapter and a data source name and returns a
store.Store working on the database the name points to, creating the models
table if it does not exist, or an error if the database cannot be reached
or the table cannot be created.
*/
func Open(ctx context.Context, a Adapter, dsn string) (store.Store, error) {
	db, err := sql.Open(a.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	createStmt, err := db.PrepareContext(ctx, a.CreateTableStmt())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing models creation statement: %v", err)
	}
	defer createStmt.Close()
	_, err = createStmt.ExecContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring models table exists: %v", err)
	}
	return &sqlStore{db, a}, nil
}

func (ss *sqlStore) Put(ctx context.Context, key string, blob []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	_, err := ss.db.ExecContext(ctx, ss.adapter.UpsertStmt(), key, blob)
	if err != nil {
		return fmt.Errorf("saving model %q: %v", key, err)
	}
	return nil
}

func (ss *sqlStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := ss.db.QueryRowContext(ctx, ss.adapter.SelectStmt(), key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: %v", key, err)
	}
	return blob, nil
}

func (ss *sqlStore) Delete(ctx context.Context, key string) error {
	result, err := ss.db.ExecContext(ctx, ss.adapter.DeleteStmt(), key)
	if err != nil {
		return fmt.Errorf("deleting model %q: %v", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting model %q: %v", key, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (ss *sqlStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := ss.db.QueryContext(ctx, keysStmt)
	if err != nil {
		return nil, fmt.Errorf("listing models: %v", err)
	}
	defer rows.Close()
	keys := []string{}
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("listing models: %v", err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("listing models: %v", err)
	}
	return keys, nil
}

func (ss *sqlStore) Close(ctx context.Context) error {
	return ss.db.Close()
}
