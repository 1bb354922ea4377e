package database

import (
	"context"

	"github.com/uptrace/bun"
)

// SafeTx is a bun.Tx whose Rollback turns into a no-op once Commit succeeded.
//
// Begun on a bun.Tx (the test harness runs every test inside one), bun uses
// savepoints, and a ROLLBACK TO SAVEPOINT after RELEASE SAVEPOINT would abort
// the enclosing transaction.
type SafeTx struct {
	bun.Tx
	done bool
}

// BeginSafeTx starts a transaction, or a savepoint when db is already one.
func BeginSafeTx(ctx context.Context, db bun.IDB) (*SafeTx, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &SafeTx{Tx: tx}, nil
}

func (tx *SafeTx) Commit() error {
	if tx.done {
		return nil
	}
	if err := tx.Tx.Commit(); err != nil {
		return err
	}
	tx.done = true
	return nil
}

func (tx *SafeTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	return tx.Tx.Rollback()
}

// InTx runs fn in a transaction and commits when fn returns nil. Any error
// rolls back everything fn wrote, so a cascade either completes or leaves no
// trace.
func InTx(ctx context.Context, db bun.IDB, fn func(tx bun.IDB) error) error {
	tx, err := BeginSafeTx(ctx, db)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx.Tx); err != nil {
		return err
	}
	return tx.Commit()
}
