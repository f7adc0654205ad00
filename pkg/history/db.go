// Package history records summarize runs in a local SQLite database so past
// runs can be listed without re-reading their output files.
package history

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DefaultDBName is the database file created next to the output CSV when no
// explicit path is given.
const DefaultDBName = "digest-history.db"

type DB struct {
	*sql.DB
	path string
}

// Open opens or creates the history database at the given path and
// initializes the schema if it does not exist yet.
func Open(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: dbPath,
	}

	if err := db.ensureSchemaExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// ensureSchemaExists checks for the runs table and initializes the schema
// when it is absent.
func (db *DB) ensureSchemaExists() error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&tableName)

	if err == sql.ErrNoRows {
		_, err := db.Exec(schema)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}
