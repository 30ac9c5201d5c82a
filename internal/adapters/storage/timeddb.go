package storage

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"softgym/internal/observability"
)

// DefaultSlowQuery is the threshold used when none is configured.
const DefaultSlowQuery = 50 * time.Millisecond

// TimedDB wraps a *sql.DB to log slow queries and record their latency.
// Satisfies the SQLDB interface so it can be passed to any store constructor.
type TimedDB struct {
	db        *sql.DB
	threshold time.Duration
}

// Compile-time check that *TimedDB satisfies SQLDB.
var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps a *sql.DB with timing instrumentation.
// PRE: db is a valid database connection
// POST: Returns a TimedDB that warns on calls slower than threshold
func NewTimedDB(db *sql.DB, threshold time.Duration) *TimedDB {
	if threshold <= 0 {
		threshold = DefaultSlowQuery
	}
	return &TimedDB{db: db, threshold: threshold}
}

// RawDB returns the underlying *sql.DB (needed for migrations and pool config).
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

// Instrument wraps q, typically a *sql.Tx, so its statements are timed too.
func (t *TimedDB) Instrument(q Querier) Querier {
	return &timedQuerier{q: q, threshold: t.threshold}
}

// ExecContext wraps sql.DB.ExecContext with timing.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.db.ExecContext(ctx, query, args...)
	logQuery("ExecContext", start, t.threshold)
	return result, err
}

// QueryContext wraps sql.DB.QueryContext with timing.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	logQuery("QueryContext", start, t.threshold)
	return rows, err
}

// QueryRowContext wraps sql.DB.QueryRowContext with timing.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	logQuery("QueryRowContext", start, t.threshold)
	return row
}

// BeginTx wraps sql.DB.BeginTx with timing.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	start := time.Now()
	tx, err := t.db.BeginTx(ctx, opts)
	logQuery("BeginTx", start, t.threshold)
	return tx, err
}

// Close closes the underlying database connection.
func (t *TimedDB) Close() error {
	return t.db.Close()
}

// Ping verifies the database connection.
func (t *TimedDB) Ping(ctx context.Context) error {
	return t.db.PingContext(ctx)
}

type timedQuerier struct {
	q         Querier
	threshold time.Duration
}

func (t *timedQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.q.ExecContext(ctx, query, args...)
	logQuery("TxExecContext", start, t.threshold)
	return result, err
}

func (t *timedQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.q.QueryContext(ctx, query, args...)
	logQuery("TxQueryContext", start, t.threshold)
	return rows, err
}

func (t *timedQuerier) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.q.QueryRowContext(ctx, query, args...)
	logQuery("TxQueryRowContext", start, t.threshold)
	return row
}

// logQuery logs and records a query timing.
func logQuery(op string, start time.Time, threshold time.Duration) {
	d := time.Since(start)
	observability.ObserveQuery(op, d)

	if d >= threshold {
		zap.L().Warn("slow_query", zap.String("op", op), zap.Duration("duration", d))
		return
	}
	zap.L().Debug("query", zap.String("op", op), zap.Duration("duration", d))
}
