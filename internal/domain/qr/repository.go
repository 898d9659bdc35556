package qr

import "context"

// Repository stores issued tokens. MarkUsed must be applied in the same
// database transaction as the work order transition the scan triggers.
type Repository interface {
	Save(ctx context.Context, r *Record) error
	// FindByToken returns a *ValidationError with ReasonNotFound for an
	// unknown token.
	FindByToken(ctx context.Context, token string) (*Record, error)
	MarkUsed(ctx context.Context, r *Record) error
	FindByWorkOrderID(ctx context.Context, workOrderID uint) ([]*Record, error)
}
