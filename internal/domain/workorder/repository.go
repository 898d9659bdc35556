package workorder

import (
	"context"
	"errors"

	vo "storefix/internal/domain/workorder/valueobjects"
	"storefix/internal/shared/query"
)

// ErrStaleWorkOrder is returned when an optimistic-concurrency update finds
// the row changed since it was read.
var ErrStaleWorkOrder = errors.New("work order was modified concurrently")

type Repository interface {
	Save(ctx context.Context, w *WorkOrder) error
	// Update persists the work order, checking the version it was loaded
	// at. Returns ErrStaleWorkOrder when another transition won the race.
	Update(ctx context.Context, w *WorkOrder) error
	FindByID(ctx context.Context, id uint) (*WorkOrder, error)
	FindByTicketID(ctx context.Context, ticketID uint) ([]*WorkOrder, error)
	// CountActiveByTicketID counts the ticket's non-terminal work orders,
	// feeding the ticket ownership guard.
	CountActiveByTicketID(ctx context.Context, ticketID uint) (int64, error)
	List(ctx context.Context, filter Filter) ([]*WorkOrder, int64, error)
}

type Filter struct {
	query.BaseFilter

	Status   *vo.WorkOrderStatus
	TicketID *uint
	VendorID *uint
	OwnerID  *uint
}
