package iocache

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/gridcache/schema"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// migrationsTable records the applied schema version, kept apart from other tools' tables.
const migrationsTable = "gridcache_schema_migrations"

// migrationDir maps a backend to its dialect folder under migrations/.
func migrationDir(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "migrations/mysql"
	case schema.PostgreSQLBackend:
		return "migrations/postgres"
	default:
		return "migrations/sqlite"
	}
}

// newMigrator opens the history database and pairs it with the embedded migrations for its dialect.
func newMigrator(backend schema.DatabaseBackend, connStr string) (*migrate.Migrate, func(), error) {
	db, err := openHistoryDB(backend, connStr)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = db.Close() }

	var driver database.Driver
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{MigrationsTable: migrationsTable})
	case schema.PostgreSQLBackend:
		driver, err = postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	default:
		err = fmt.Errorf("unsupported backend %q", backend)
	}
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	dialectFS, err := fs.Sub(migrationsFS, migrationDir(backend))
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	source, err := iofs.New(dialectFS, ".")
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "gridcache", driver)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, closeDB, nil
}

// MigrateHistory moves the history schema to targetVersion and prints progress to out.
// A negative target means the latest version and 0 rolls back every migration.
func MigrateHistory(backend schema.DatabaseBackend, connStr string, targetVersion int, out io.Writer) error {
	if backend == schema.NoneBackend || backend == "" {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	m, closeDB, err := newMigrator(backend, connStr)
	if err != nil {
		return err
	}
	defer closeDB()

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", current)
	}

	var target string
	switch {
	case targetVersion < 0:
		target = "the latest version"
		err = m.Up()
	case targetVersion == 0:
		target = "version 0"
		err = m.Down()
	default:
		target = fmt.Sprintf("version %d", targetVersion)
		err = m.Migrate(uint(targetVersion))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		_, _ = fmt.Fprintf(out, "No migration needed. Database is already at %s.\n", target)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to migrate to %s: %w", target, err)
	}

	reached, _, verr := m.Version()
	if errors.Is(verr, migrate.ErrNilVersion) {
		reached = 0
	}
	_, _ = fmt.Fprintf(out, "Successfully migrated from version %d to version %d\n", current, reached)
	return nil
}
