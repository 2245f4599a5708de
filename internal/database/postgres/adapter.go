package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

type Adapter struct {
	db      *sql.DB
	qb      squirrel.StatementBuilderType
	connStr string
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	if config.RuntimeParams == nil {
		config.RuntimeParams = map[string]string{}
	}
	config.RuntimeParams["application_name"] = "skillseed"

	p.connStr = stdlib.RegisterConnConfig(config)

	db, err := sql.Open("pgx", p.connStr)
	if err != nil {
		stdlib.UnregisterConnConfig(p.connStr)
		return fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	// One writer, one transaction.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	p.db = db
	return nil
}

func (p *Adapter) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	stdlib.UnregisterConnConfig(p.connStr)
	return err
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Adapter) DB() *sql.DB { return p.db }

func (p *Adapter) Provider() string { return "postgresql" }

func (p *Adapter) Builder() squirrel.StatementBuilderType { return p.qb }
