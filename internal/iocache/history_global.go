package iocache

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
)

// OpenHistory opens the history store configured by backend.
// An empty backend disables tracking and returns nil.
func OpenHistory(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == "" {
		return nil, nil
	}
	store, err := NewHistoryStore(backend, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}
	return store, nil
}

// ClearHistory removes all fetch history for the specified backend.
// SQLite deletes the database file. MySQL and PostgreSQL drop the history table
// and its migration version table so a later migrate starts from version 0.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		for _, path := range []string{dbFilePath, dbFilePath + "-wal", dbFilePath + "-shm"} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove SQLite database file %s: %w", path, err)
			}
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, err := openHistoryDB(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return dropTables(db, backend, fetchHistoryTable, migrationsTable)

	case schema.NoneBackend, "":
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// dropTables drops each named table that exists.
func dropTables(db *sql.DB, backend schema.DatabaseBackend, tables ...string) error {
	for _, table := range tables {
		if err := validateTableName(table); err != nil {
			return err
		}
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
