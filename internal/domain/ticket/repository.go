package ticket

import (
	"context"
	"errors"

	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/shared/query"
)

// ErrStaleTicket is returned when an optimistic-concurrency update finds
// the row was modified since it was read; the caller must re-read and
// re-evaluate the transition.
var ErrStaleTicket = errors.New("ticket was modified concurrently")

type Repository interface {
	Save(ctx context.Context, t *Ticket) error
	// Update persists the ticket, checking the version it was loaded at.
	// Returns ErrStaleTicket when another transition won the race.
	Update(ctx context.Context, t *Ticket) error
	FindByID(ctx context.Context, id uint) (*Ticket, error)
	FindByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
}

type Filter struct {
	query.BaseFilter

	Status   *vo.TicketStatus
	StoreID  *uint
	OwnerID  *uint
	Urgent   *bool
	Archived *bool
}

type CostEstimationRepository interface {
	Save(ctx context.Context, e *CostEstimation) error
	FindByTicketID(ctx context.Context, ticketID uint) (*CostEstimation, error)
}
