package database

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/skillsphere/skillseed/internal/database/common"
)

type Querier = common.Querier

// Adapter hides the differences between the supported SQL engines. Every
// statement issued while seeding goes through a Querier so it can run
// inside the caller's transaction.
type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	DB() *sql.DB

	Provider() string
	Builder() squirrel.StatementBuilderType

	// ResetTable removes every row of table and, where the engine allows it
	// without leaving the transaction, restarts its id counter.
	ResetTable(ctx context.Context, q Querier, table string) error
	ResetsCounters() bool

	// InsertReturningID executes a single-row insert and returns the
	// generated primary key.
	InsertReturningID(ctx context.Context, q Querier, insert squirrel.InsertBuilder) (int64, error)

	CheckTableExists(ctx context.Context, q Querier, table string) (bool, error)
	GetTableRowCount(ctx context.Context, q Querier, table string) (int64, error)

	// ErrorCode extracts the SQLSTATE or driver error number from err, or
	// returns "" when err did not come from this engine's driver.
	ErrorCode(err error) string
}
