// Package seedtest provisions throwaway marketplace databases for tests.
package seedtest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/skillsphere/skillseed/internal/database"
	"github.com/skillsphere/skillseed/internal/database/common"
	"github.com/skillsphere/skillseed/template"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const PostgresImage = "postgres:16-alpine"

// NewSQLite opens a fresh SQLite file under t.TempDir with the marketplace
// schema applied.
func NewSQLite(t *testing.T) database.Adapter {
	t.Helper()

	ctx := context.Background()
	url := "sqlite://" + filepath.Join(t.TempDir(), "skillsphere.db")

	adapter, err := database.Open(ctx, "sqlite", url)
	if err != nil {
		t.Fatalf("Failed to open SQLite database: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })

	ApplySchema(t, adapter, template.SQLite)
	return adapter
}

// NewPostgres starts a disposable PostgreSQL container. It is skipped in
// short mode and when Docker is unavailable.
func NewPostgres(t *testing.T) database.Adapter {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        PostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "skillsphere",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	url := fmt.Sprintf("postgres://test:test@%s:%s/skillsphere?sslmode=disable", host, port.Port())

	var adapter database.Adapter
	for i := 0; i < 10; i++ {
		if adapter, err = database.Open(ctx, "postgresql", url); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL container: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })

	ApplySchema(t, adapter, template.PostgreSQL)
	return adapter
}

func ApplySchema(t *testing.T, adapter database.Adapter, dbType template.DatabaseType) {
	t.Helper()

	schema := template.NewProjectTemplate(dbType).GetSchema()
	if err := common.ExecScript(context.Background(), adapter.DB(), schema); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
}

// Counts returns the row count of every table in tables.
func Counts(t *testing.T, adapter database.Adapter, tables []string) map[string]int64 {
	t.Helper()

	counts, err := database.GetAllTableRowCounts(context.Background(), adapter, adapter.DB(), tables)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return counts
}
