//go:build database

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fabgilson/scrumboard-throwaway-sub001/schema"
)

// TestBurndownWithMySQL tests the burndown CLI with MySQL holding both stores.
func TestBurndownWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "burndown",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/burndown?parseTime=true", host, port.Port())
	runBackendScenario(t, databaseEnv("mysql", connStr))
}

// TestBurndownWithPostgres tests the burndown CLI with PostgreSQL holding both stores.
func TestBurndownWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runBackendScenario(t, databaseEnv("postgresql", connStr))
}

func databaseEnv(backend, connStr string) []string {
	return []string{
		"BURNDOWN_STORE_BACKEND=" + backend,
		"BURNDOWN_STORE_DB_CONNECT=" + connStr,
		"BURNDOWN_CACHE_BACKEND=" + backend,
		"BURNDOWN_CACHE_DB_CONNECT=" + connStr,
	}
}

// runBackendScenario clears both stores, imports the sample board and charts it twice.
func runBackendScenario(t *testing.T, env []string) {
	t.Helper()

	_, err := runCommand(t, env, "cache", "clear")
	require.NoError(t, err)
	_, err = runCommand(t, env, "store", "clear")
	require.NoError(t, err)

	_, err = runCommand(t, env, "store", "import", writeSampleBoard(t))
	require.NoError(t, err)

	var first, second schema.BurnResult
	out, err := runCommand(t, env, "burndown", "--scope-id", "10", "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &first))
	out, err = runCommand(t, env, "burndown", "--scope-id", "10", "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &second))
	assert.NotEmpty(t, first.Points)
	assert.Equal(t, first.Points, second.Points)

	_, err = runCommand(t, env, "flow", "--scope-id", "10", "--output", "json")
	require.NoError(t, err)

	_, err = runCommand(t, env, "cache", "status")
	require.NoError(t, err)
	_, err = runCommand(t, env, "store", "status")
	require.NoError(t, err)
}
