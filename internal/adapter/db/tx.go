package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskpulse/internal/core/ports"
)

type txKey struct{}

// TxManager runs a unit of work inside one sqlx transaction. The open
// transaction travels in the context so repositories pick it up without
// depending on it; nested RunInTx calls join the outer transaction.
type TxManager struct {
	db *sqlx.DB
}

func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

var _ ports.TxManager = (*TxManager)(nil)

func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ext returns the execution target for the current call: the transaction
// carried by the context when present, the plain connection otherwise.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// inTx reports whether the context carries an open transaction; locking
// reads only make sense inside one.
func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return ok
}
