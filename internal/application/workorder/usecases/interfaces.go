package usecases

import "context"

// TransactionManager groups the writes of one accepted transition into a
// single atomic unit. Satisfied by shared/db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
