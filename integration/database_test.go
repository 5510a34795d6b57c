//go:build database

package integration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gridcache/internal/iocache"
	"github.com/huangsam/gridcache/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startMySQL starts a MySQL container and returns a go-sql-driver DSN for it.
func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gridcache",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mysqlC.Terminate(ctx) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	return fmt.Sprintf("root:secret123@tcp(%s:%s)/gridcache?parseTime=true", host, port.Port())
}

// startPostgres starts a PostgreSQL container and returns a pgx DSN for it.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
}

// exerciseHistoryStore runs migrations and a record/list/status/clear cycle against a backend.
func exerciseHistoryStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()

	require.NoError(t, iocache.MigrateHistory(backend, connStr, -1, io.Discard))

	store, err := iocache.NewHistoryStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Clear())

	msg := "http 404"
	records := []schema.FetchRecord{
		{Kind: schema.WeeklyKind, CacheKey: "weekly_2022-2024", FirstPeriod: 2022, LastPeriod: 2024, Outcome: schema.FetchedOutcome, RowCount: 5000, FetchedAt: time.Now().Add(-time.Minute), DurationMs: 900},
		{Kind: schema.WeeklyKind, CacheKey: "weekly_2022-2024", FirstPeriod: 2022, LastPeriod: 2024, Outcome: schema.CacheHitOutcome, RowCount: 5000, FetchedAt: time.Now(), DurationMs: 12},
		{Kind: schema.PlayByPlayKind, CacheKey: "pbp_2030", FirstPeriod: 2030, LastPeriod: 2030, Outcome: schema.FetchFailedOutcome, FetchedAt: time.Now(), ErrorMessage: &msg},
	}
	for _, r := range records {
		id, err := store.RecordFetch(r)
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	listed, err := store.ListFetches(0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "pbp_2030", listed[0].CacheKey, "newest first")
	require.NotNil(t, listed[0].ErrorMessage)
	assert.Equal(t, msg, *listed[0].ErrorMessage)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 3, status.TotalFetches)
	assert.Equal(t, int64(1), status.ByOutcome[schema.CacheHitOutcome])

	exportPath := filepath.Join(t.TempDir(), "history.parquet")
	require.NoError(t, iocache.ExecuteHistoryExport(store, exportPath, io.Discard))
	assert.FileExists(t, exportPath)

	require.NoError(t, iocache.MigrateHistory(backend, connStr, 1, io.Discard))
	require.NoError(t, iocache.ClearHistory(backend, "", connStr))

	// Clearing drops the version table too, so migrations start over
	var out bytes.Buffer
	require.NoError(t, iocache.MigrateHistory(backend, connStr, -1, &out))
	assert.Contains(t, out.String(), "from version 0 to version 2")
	require.NoError(t, iocache.ClearHistory(backend, "", connStr))
}

// TestHistoryWithMySQL tests the fetch history store and CLI with a MySQL backend.
func TestHistoryWithMySQL(t *testing.T) {
	connStr := startMySQL(t)
	exerciseHistoryStore(t, schema.MySQLBackend, connStr)

	server := newReleaseServer(t)
	env := []string{
		"GRIDCACHE_BASE_URL=" + server.URL,
		"GRIDCACHE_CACHE_DIR=" + t.TempDir(),
		"GRIDCACHE_HISTORY_BACKEND=mysql",
		"GRIDCACHE_HISTORY_DB_CONNECT=" + connStr,
	}
	_, err := runGridcache(t, env, "draft", "--seasons", "2020-2021")
	require.NoError(t, err)
	_, err = runGridcache(t, env, "history", "list")
	require.NoError(t, err)
	_, err = runGridcache(t, env, "history", "clear")
	require.NoError(t, err)
}

// TestHistoryWithPostgres tests the fetch history store and CLI with a PostgreSQL backend.
func TestHistoryWithPostgres(t *testing.T) {
	connStr := startPostgres(t)
	exerciseHistoryStore(t, schema.PostgreSQLBackend, connStr)

	server := newReleaseServer(t)
	env := []string{
		"GRIDCACHE_BASE_URL=" + server.URL,
		"GRIDCACHE_CACHE_DIR=" + t.TempDir(),
		"GRIDCACHE_HISTORY_BACKEND=postgresql",
		"GRIDCACHE_HISTORY_DB_CONNECT=" + connStr,
	}
	_, err := runGridcache(t, env, "draft", "--seasons", "2020-2021")
	require.NoError(t, err)
	_, err = runGridcache(t, env, "history", "status")
	require.NoError(t, err)
	_, err = runGridcache(t, env, "history", "clear")
	require.NoError(t, err)
}
