// Package db carries the transaction plumbing shared by all repositories.
//
// Money-touching flows here span several aggregates in one unit of work: a
// purchase writes the subscription, redeems the coupon and issues the
// invoice, and either all of it lands or none of it does. Use cases open
// the unit with RunInTransaction; repositories pick the transaction up
// from the context without knowing who opened it.
package db

import (
	"context"

	"gorm.io/gorm"
)

// txContextKey keys the active *gorm.DB transaction in a context.
type txContextKey struct{}

// TransactionManager opens units of work over a single gorm connection.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside one database transaction. The transaction
// handle travels to repositories through the context fn receives; fn
// returning an error rolls everything back.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// GetTx returns the transaction bound to ctx, or the base connection when
// the caller runs outside a unit of work.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	return GetTxFromContext(ctx, tm.db)
}

// GetTxFromContext is the repository-side accessor: it yields the active
// transaction when one is in flight and falls back to defaultDB otherwise,
// so repository methods behave the same inside and outside a purchase flow.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
