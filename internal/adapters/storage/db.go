package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Querier is the subset of *sql.DB and *sql.Tx that stores issue statements on.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLDB is the database interface used by store constructors and the
// transaction runner. Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	Querier
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time checks.
var (
	_ SQLDB   = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// dsnPragmas are applied by the driver to every pooled connection.
const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"

// Open opens the SQLite database at path with WAL, foreign keys and a busy timeout.
// PRE: path is a writable file path
// POST: returns a pinged connection pool
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows a single writer; a small pool avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(8)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

// migration is one forward-only schema step.
type migration struct {
	version     int
	description string
	statements  []string
}

var migrations = []migration{
	{
		version:     1,
		description: "baseline schema",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS gym (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				location TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS app_user (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				gym_id INTEGER NOT NULL,
				FOREIGN KEY (gym_id) REFERENCES gym(id) ON DELETE RESTRICT
			)`,
			`CREATE TABLE IF NOT EXISTS client (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				plan_type TEXT NOT NULL,
				expiration_date TEXT,
				gym_id INTEGER NOT NULL,
				FOREIGN KEY (gym_id) REFERENCES gym(id) ON DELETE RESTRICT
			)`,
			`CREATE TABLE IF NOT EXISTS payment (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				client_id INTEGER NOT NULL,
				plan_type TEXT NOT NULL,
				amount TEXT NOT NULL,
				payment_date TEXT NOT NULL,
				resulting_expiration TEXT NOT NULL,
				FOREIGN KEY (client_id) REFERENCES client(id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS access_log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				client_id INTEGER,
				gym_id INTEGER NOT NULL,
				client_name TEXT NOT NULL,
				status TEXT NOT NULL CHECK (status IN ('ACCEPTED', 'REJECTED', 'INVALID')),
				reason TEXT NOT NULL DEFAULT '',
				access_date TEXT NOT NULL,
				access_time TEXT NOT NULL,
				FOREIGN KEY (client_id) REFERENCES client(id) ON DELETE SET NULL,
				FOREIGN KEY (gym_id) REFERENCES gym(id) ON DELETE RESTRICT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_client_gym_name ON client(gym_id, name)`,
			`CREATE INDEX IF NOT EXISTS idx_payment_client ON payment(client_id)`,
			`CREATE INDEX IF NOT EXISTS idx_access_log_gym_date ON access_log(gym_id, access_date)`,
		},
	},
	{
		version:     2,
		description: "index payments by date for closing reports",
		statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_payment_date ON payment(payment_date)`,
		},
	},
}

// LatestSchemaVersion returns the version the migration chain ends at.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, 0 for an empty database.
// PRE: db is open
// POST: no schema changes
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("inspect schema: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB applies every migration newer than the recorded version.
// Each migration runs in its own transaction together with its version row.
// PRE: db is open with foreign keys on
// POST: SchemaVersion(db) == LatestSchemaVersion()
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
		}
		zap.L().Info("schema_migrated",
			zap.Int("version", m.version),
			zap.String("description", m.description),
		)
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version, description) VALUES (?, ?)", m.version, m.description); err != nil {
		return err
	}
	return tx.Commit()
}
