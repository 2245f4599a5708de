package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSource(t *testing.T) {
	tests := []struct {
		url, dsn, path string
	}{
		{"sqlite://dev.db", "dev.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", "dev.db"},
		{"file:dev.db?_foreign_keys=on", "file:dev.db?_foreign_keys=on", "dev.db"},
		{"file:dev.db?cache=shared", "file:dev.db?cache=shared&_foreign_keys=on", "dev.db"},
	}

	for _, tt := range tests {
		dsn, path := dataSource(tt.url)
		assert.Equal(t, tt.dsn, dsn, tt.url)
		assert.Equal(t, tt.path, path, tt.url)
	}
}

func TestResetTableRestartsCounter(t *testing.T) {
	ctx := context.Background()
	a := New()
	require.NoError(t, a.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "reset.db")))
	defer a.Close()

	db := a.DB()
	_, err := db.ExecContext(ctx, `CREATE TABLE skills (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT UNIQUE NOT NULL)`)
	require.NoError(t, err)

	insert := func(name string) int64 {
		id, err := a.InsertReturningID(ctx, db, a.Builder().Insert("skills").Columns("name").Values(name))
		require.NoError(t, err)
		return id
	}

	assert.Equal(t, int64(1), insert("Go"))
	assert.Equal(t, int64(2), insert("Rust"))

	_, err = a.InsertReturningID(ctx, db, squirrel.Insert("skills").Columns("name").Values("Go"))
	require.Error(t, err)
	assert.Equal(t, "2067", a.ErrorCode(err)) // SQLITE_CONSTRAINT_UNIQUE

	require.NoError(t, a.ResetTable(ctx, db, "skills"))

	n, err := a.GetTableRowCount(ctx, db, "skills")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, int64(1), insert("Go"))
}
