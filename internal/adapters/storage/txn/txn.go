// Package txn runs a unit of work against stores bound to one SQL transaction.
package txn

import (
	"context"
	"fmt"

	"softgym/internal/adapters/storage"
	accessLogStore "softgym/internal/adapters/storage/accesslog"
	clientStore "softgym/internal/adapters/storage/client"
	gymStore "softgym/internal/adapters/storage/gym"
	paymentStore "softgym/internal/adapters/storage/payment"
	userStore "softgym/internal/adapters/storage/user"
)

// Stores is the set of stores visible inside a transaction.
type Stores struct {
	Gyms       gymStore.Store
	Users      userStore.Store
	Clients    clientStore.Store
	Payments   paymentStore.Store
	AccessLogs accessLogStore.Store
}

// Transactor runs fn inside a transaction, committing when fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// instrumenter is implemented by *storage.TimedDB.
type instrumenter interface {
	Instrument(q storage.Querier) storage.Querier
}

// SQLTransactor implements Transactor over a storage.SQLDB.
type SQLTransactor struct {
	db storage.SQLDB
}

// New creates a SQLTransactor.
func New(db storage.SQLDB) *SQLTransactor {
	return &SQLTransactor{db: db}
}

// WithinTx begins a transaction, hands fn stores bound to it and commits.
// Any error from fn, or a panic, rolls the transaction back.
// PRE: fn does not retain stores after returning
// POST: either every write in fn is committed or none is
func (t *SQLTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var q storage.Querier = tx
	if inst, ok := t.db.(instrumenter); ok {
		q = inst.Instrument(tx)
	}

	if err := fn(ctx, Bind(q)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Bind builds the SQLite stores over q, which may be a pool or a transaction.
func Bind(q storage.Querier) Stores {
	return Stores{
		Gyms:       gymStore.NewSQLiteStore(q),
		Users:      userStore.NewSQLiteStore(q),
		Clients:    clientStore.NewSQLiteStore(q),
		Payments:   paymentStore.NewSQLiteStore(q),
		AccessLogs: accessLogStore.NewSQLiteStore(q),
	}
}
