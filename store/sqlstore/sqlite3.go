package sqlstore

import (
	"context"

	"github.com/pbanos/symptree/store"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type sqlite3Adapter struct{}

// SQLite3 is the Adapter for SQLite3 databases.
var SQLite3 Adapter = sqlite3Adapter{}

/*
OpenSQLite3 takes a context and a path to an SQLite3 database file and
returns a store.Store that works on the file's database or an error if it
fails to open it as an sqlite3 database.
*/
func OpenSQLite3(ctx context.Context, path string) (store.Store, error) {
	return Open(ctx, SQLite3, path)
}

func (sqlite3Adapter) DriverName() string {
	return "sqlite3"
}

func (sqlite3Adapter) CreateTableStmt() string {
	return `CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP)`
}

func (sqlite3Adapter) UpsertStmt() string {
	return `INSERT INTO models (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, created_at = CURRENT_TIMESTAMP`
}

func (sqlite3Adapter) SelectStmt() string {
	return `SELECT data FROM models WHERE id = ?`
}

func (sqlite3Adapter) DeleteStmt() string {
	return `DELETE FROM models WHERE id = ?`
}
