package database

import (
	"context"
	"fmt"

	"github.com/skillsphere/skillseed/internal/apperrors"
	"github.com/skillsphere/skillseed/internal/database/mysql"
	"github.com/skillsphere/skillseed/internal/database/postgres"
	"github.com/skillsphere/skillseed/internal/database/sqlite"
)

func NewAdapter(provider string) (Adapter, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}

// Open connects and pings the target database. Any failure is reported as
// an *apperrors.ConnectError.
func Open(ctx context.Context, provider, url string) (Adapter, error) {
	adapter, err := NewAdapter(provider)
	if err != nil {
		return nil, err
	}

	if err := adapter.Connect(ctx, url); err != nil {
		return nil, &apperrors.ConnectError{Provider: provider, Err: err}
	}

	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, &apperrors.ConnectError{Provider: provider, Err: err}
	}

	return adapter, nil
}

// GetAllTableRowCounts counts the rows of each table through q.
func GetAllTableRowCounts(ctx context.Context, adapter Adapter, q Querier, tables []string) (map[string]int64, error) {
	result := make(map[string]int64, len(tables))
	for _, table := range tables {
		n, err := adapter.GetTableRowCount(ctx, q, table)
		if err != nil {
			return nil, err
		}
		result[table] = n
	}
	return result, nil
}
