package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/skillsphere/skillseed/internal/database/common"
)

// ResetTable truncates table and restarts its identity. Unlike setval,
// RESTART IDENTITY is undone by a rollback.
func (p *Adapter) ResetTable(ctx context.Context, q common.Querier, table string) error {
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", pq.QuoteIdentifier(table))
	if _, err := q.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", table, err)
	}
	return nil
}

func (p *Adapter) ResetsCounters() bool { return true }

func (p *Adapter) InsertReturningID(ctx context.Context, q common.Querier, insert squirrel.InsertBuilder) (int64, error) {
	query, args, err := insert.Suffix("RETURNING id").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (p *Adapter) CheckTableExists(ctx context.Context, q common.Querier, table string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1)",
		table).Scan(&exists)
	return exists, err
}

func (p *Adapter) GetTableRowCount(ctx context.Context, q common.Querier, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pq.QuoteIdentifier(table))
	if err := q.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (p *Adapter) ErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
