package approval

import "context"

// RecordRepository is append-only: records are written once and never
// updated or deleted.
type RecordRepository interface {
	Append(ctx context.Context, r *Record) error
	FindByTicketID(ctx context.Context, ticketID uint) ([]*Record, error)
}
