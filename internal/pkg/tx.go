package pkg

import (
	"context"

	"gorm.io/gorm"
)

// WithTx runs fn in a transaction bound to ctx. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics; a panic is
// re-raised after the rollback. Calling WithTx with a tx already inside a
// transaction nests through a savepoint.
//
// Inside fn only tx may be used; statements on db would run outside the transaction.
func WithTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
