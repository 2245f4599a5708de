package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skillsphere/skillseed/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdapter(t *testing.T) {
	for provider, want := range map[string]string{
		"postgresql": "postgresql",
		"postgres":   "postgresql",
		"mysql":      "mysql",
		"sqlite3":    "sqlite",
	} {
		adapter, err := NewAdapter(provider)
		require.NoError(t, err)
		assert.Equal(t, want, adapter.Provider())
	}

	_, err := NewAdapter("oracle")
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	pg, _ := NewAdapter("postgresql")
	query, _, err := pg.Builder().Insert("skills").Columns("name").Values("Go").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO skills (name) VALUES ($1)", query)

	lite, _ := NewAdapter("sqlite")
	query, _, err = lite.Builder().Insert("skills").Columns("name").Values("Go").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO skills (name) VALUES (?)", query)
}

func TestOpenReportsConnectError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir", "seed.db")

	_, err := Open(context.Background(), "sqlite", "sqlite://"+missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConnect)

	var connErr *apperrors.ConnectError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "sqlite", connErr.Provider)
}

func TestOpenAndCount(t *testing.T) {
	ctx := context.Background()
	adapter, err := Open(ctx, "sqlite", "sqlite://"+filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	defer adapter.Close()

	db := adapter.DB()
	_, err = db.ExecContext(ctx, "CREATE TABLE skills (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO skills (name) VALUES ('Go'), ('SQL')")
	require.NoError(t, err)

	counts, err := GetAllTableRowCounts(ctx, adapter, db, []string{"skills"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"skills": 2}, counts)
}

func TestPostgresErrorCode(t *testing.T) {
	pg, _ := NewAdapter("postgres")
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", Message: "duplicate key"})

	assert.Equal(t, "23505", pg.ErrorCode(err))
	assert.Equal(t, "", pg.ErrorCode(errors.New("plain")))
}
