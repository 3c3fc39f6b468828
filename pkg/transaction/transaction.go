package transaction

import (
	"context"

	"gorm.io/gorm"
)

type (
	// Transactor runs fn inside one database transaction. Repositories called
	// with the ctx passed to fn take part in that transaction.
	Transactor interface {
		WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	}

	gormTransactor struct {
		db *gorm.DB
	}

	ctxKey struct{}
)

var txKey = ctxKey{}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

// WithTx stores a gorm transaction in context for downstream repositories.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a gorm transaction from context if present.
func From(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok
}

// Conn returns the transaction bound to ctx, or db when there is none.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := From(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
