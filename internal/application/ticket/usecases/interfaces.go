package usecases

import "context"

// TransactionManager runs a function inside one database transaction so a
// status write, its side records and the audit entry commit or roll back
// together. Satisfied by shared/db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
