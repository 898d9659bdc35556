package ticket

import (
	"fmt"

	vo "storefix/internal/domain/ticket/valueobjects"
)

// ErrOwnerLocked is returned when a ticket owner change is blocked by
// active work orders. Callers treat it exactly like a transition denial.
type ErrOwnerLocked struct {
	TicketID         uint
	ActiveWorkOrders int64
}

func (e *ErrOwnerLocked) Error() string {
	return fmt.Sprintf("ticket %d ownership is locked: %d active work orders", e.TicketID, e.ActiveWorkOrders)
}

// GuardOwnerChange enforces the ownership invariant around work order
// execution: while a ticket is in WORK_ORDER_IN_PROGRESS with at least one
// non-terminal work order, its owner may only remain unchanged or become
// nil as part of the Archive transition. Calling services must run this
// check before every owner-changing write, independent of what the
// transition engine decided.
func GuardOwnerChange(t *Ticket, activeWorkOrders int64, newOwnerID *uint) error {
	if t.Status() != vo.StatusWorkOrderInProgress || activeWorkOrders == 0 {
		return nil
	}

	// Archive clears the owner; that is the single permitted change.
	if newOwnerID == nil {
		return nil
	}

	current := t.OwnerID()
	if current != nil && *current == *newOwnerID {
		return nil
	}

	return &ErrOwnerLocked{TicketID: t.ID(), ActiveWorkOrders: activeWorkOrders}
}
