package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db   *sql.DB
	qb   squirrel.StatementBuilderType
	path string
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// dataSource turns sqlite://path, sqlite:path and file:path URLs into a
// go-sqlite3 DSN with foreign keys enforced.
func dataSource(url string) (dsn, path string) {
	dsn = strings.TrimPrefix(url, "sqlite://")
	dsn = strings.TrimPrefix(dsn, "sqlite:")

	path = strings.TrimPrefix(dsn, "file:")
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}

	if !strings.Contains(dsn, "?") {
		return dsn + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path
	}
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk=") {
		dsn += "&_foreign_keys=on"
	}
	return dsn, path
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dsn, path := dataSource(url)
	if path == "" {
		return fmt.Errorf("SQLite URL %q has no file path", url)
	}
	s.path = path

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) DB() *sql.DB { return s.db }

func (s *Adapter) Provider() string { return "sqlite" }

func (s *Adapter) Builder() squirrel.StatementBuilderType { return s.qb }

// Path is the database file on disk.
func (s *Adapter) Path() string { return s.path }
