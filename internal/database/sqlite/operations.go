package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"github.com/skillsphere/skillseed/internal/database/common"
)

func quote(table string) string {
	return `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
}

func (s *Adapter) ResetTable(ctx context.Context, q common.Querier, table string) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM "+quote(table)); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	// sqlite_sequence only exists once an AUTOINCREMENT table has been written.
	hasSequence, err := s.CheckTableExists(ctx, q, "sqlite_sequence")
	if err != nil {
		return err
	}
	if hasSequence {
		if _, err := q.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}

func (s *Adapter) ResetsCounters() bool { return true }

func (s *Adapter) InsertReturningID(ctx context.Context, q common.Querier, insert squirrel.InsertBuilder) (int64, error) {
	query, args, err := insert.Suffix("RETURNING id").PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Adapter) CheckTableExists(ctx context.Context, q common.Querier, table string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		table).Scan(&count)
	return count > 0, err
}

func (s *Adapter) GetTableRowCount(ctx context.Context, q common.Querier, table string) (int64, error) {
	var count int64
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quote(table)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (s *Adapter) ErrorCode(err error) string {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return strconv.Itoa(int(sqliteErr.ExtendedCode))
	}
	return ""
}
