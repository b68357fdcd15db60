// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homeledger/backend/internal/application/adapter"
)

type txKey struct{}

// transactor implements the adapter.Transactor interface on top of gorm transactions.
type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new transactor instance.
func NewTransactor(db *gorm.DB) adapter.Transactor {
	return &transactor{db: db}
}

// WithinTransaction runs fn in a transaction. Nested calls join the outer transaction.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate locks the selected rows until the transaction ends. SQLite ignores the clause.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
