// Package storagetest opens migrated SQLite databases for tests.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"softgym/internal/adapters/storage"
)

// Open returns a migrated database in a per-test temporary directory.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "softgym.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// SeedGym inserts a gym and returns its ID.
func SeedGym(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(), "INSERT INTO gym (name, location) VALUES (?, '')", name)
	if err != nil {
		t.Fatalf("seed gym: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed gym id: %v", err)
	}
	return id
}
