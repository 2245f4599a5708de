package seeder

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/skillsphere/skillseed/internal/database"
)

// batchWriter buffers rows for one table and flushes them as multi-row
// INSERT statements of at most size rows.
type batchWriter struct {
	ctx     context.Context
	q       database.Querier
	qb      squirrel.StatementBuilderType
	table   string
	columns []string
	size    int
	rows    [][]any
	written int64
}

func (s *Seeder) newBatchWriter(ctx context.Context, table string, columns ...string) *batchWriter {
	size := s.opts.BatchSize
	if size <= 0 {
		size = 100
	}
	return &batchWriter{
		ctx:     ctx,
		q:       s.tx,
		qb:      s.adapter.Builder(),
		table:   table,
		columns: columns,
		size:    size,
	}
}

func (w *batchWriter) Add(values ...any) error {
	if len(values) != len(w.columns) {
		return fmt.Errorf("%s: expected %d values, got %d", w.table, len(w.columns), len(values))
	}
	w.rows = append(w.rows, values)
	if len(w.rows) >= w.size {
		return w.Flush()
	}
	return nil
}

func (w *batchWriter) Flush() error {
	if len(w.rows) == 0 {
		return nil
	}

	insert := w.qb.Insert(w.table).Columns(w.columns...)
	for _, row := range w.rows {
		insert = insert.Values(row...)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert for %s: %w", w.table, err)
	}
	if _, err := w.q.ExecContext(w.ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert batch into %s: %w", w.table, err)
	}

	w.written += int64(len(w.rows))
	w.rows = w.rows[:0]
	return nil
}

// Close flushes the remaining rows and returns the total written.
func (w *batchWriter) Close() (int64, error) {
	if err := w.Flush(); err != nil {
		return w.written, err
	}
	return w.written, nil
}

// insertOne inserts a single row and returns its generated id.
func (s *Seeder) insertOne(ctx context.Context, table string, columns []string, values ...any) (int64, error) {
	insert := s.adapter.Builder().Insert(table).Columns(columns...).Values(values...)
	id, err := s.adapter.InsertReturningID(ctx, s.tx, insert)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return id, nil
}
