package mysql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	driver "github.com/go-sql-driver/mysql"
	"github.com/skillsphere/skillseed/internal/database/common"
)

func quote(table string) string {
	return "`" + table + "`"
}

// ResetTable deletes every row. TRUNCATE and ALTER TABLE ... AUTO_INCREMENT
// commit implicitly in MySQL, so counters are left as they are.
func (m *Adapter) ResetTable(ctx context.Context, q common.Querier, table string) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM "+quote(table)); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

func (m *Adapter) ResetsCounters() bool { return false }

func (m *Adapter) InsertReturningID(ctx context.Context, q common.Querier, insert squirrel.InsertBuilder) (int64, error) {
	query, args, err := insert.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return 0, err
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (m *Adapter) CheckTableExists(ctx context.Context, q common.Querier, table string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
		table).Scan(&count)
	return count > 0, err
}

func (m *Adapter) GetTableRowCount(ctx context.Context, q common.Querier, table string) (int64, error) {
	var count int64
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quote(table)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (m *Adapter) ErrorCode(err error) string {
	var myErr *driver.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number))
	}
	return ""
}
