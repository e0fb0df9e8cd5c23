package sqlstore

import (
	"context"

	"github.com/pbanos/symptree/store"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

type pgAdapter struct{}

// PostgreSQL is the Adapter for PostgreSQL databases.
var PostgreSQL Adapter = pgAdapter{}

/*
OpenPostgreSQL takes a context and a PostgreSQL database connection URL and
returns a store.Store that works on the database or an error if it fails
to connect to it.
*/
func OpenPostgreSQL(ctx context.Context, url string) (store.Store, error) {
	return Open(ctx, PostgreSQL, url)
}

func (pgAdapter) DriverName() string {
	return "postgres"
}

func (pgAdapter) CreateTableStmt() string {
	return `CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		data BYTEA NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT now())`
}

func (pgAdapter) UpsertStmt() string {
	return `INSERT INTO models (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, created_at = now()`
}

func (pgAdapter) SelectStmt() string {
	return `SELECT data FROM models WHERE id = $1`
}

func (pgAdapter) DeleteStmt() string {
	return `DELETE FROM models WHERE id = $1`
}
