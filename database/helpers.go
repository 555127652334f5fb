package database

import (
	"context"

	"github.com/uptrace/bun"
)

// Transaction executes a function within a database transaction
func (db *DB) Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

// Exists reports whether any row of T matches the given column = value condition
func Exists[T any](db *DB, ctx context.Context, column string, value any) (bool, error) {
	var exists bool
	err := WithRetry(ctx, func() error {
		var model T
		var err error
		exists, err = db.NewSelect().Model(&model).Where("? = ?", bun.Ident(column), value).Exists(ctx)
		return err
	})
	return exists, err
}
