package qr

import (
	"fmt"

	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	wvo "storefix/internal/domain/workorder/valueobjects"
)

var generatableStatuses = map[wvo.WorkOrderStatus]bool{
	wvo.StatusAcceptedTechnicianAssigned: true,
	wvo.StatusServiceInProgress:          true,
	wvo.StatusFollowUpRequested:          true,
}

// CanGenerate checks the preconditions for issuing a token: the work order
// must sit in a scannable status with a technician assigned who actually
// holds the technician role, a check-in must declare at least one
// technician, and the current owner must be compatible with the scan type.
// Check-in tolerates the technician, the store side, or a follow-up/return
// owner; check-out demands the technician is the current owner.
func CanGenerate(w *workorder.WorkOrder, technician *user.User, scanType ScanType, declaredTechnicianCount int) error {
	if !scanType.IsValid() {
		return fmt.Errorf("invalid scan type: %s", scanType)
	}
	if !generatableStatuses[w.Status()] {
		return fmt.Errorf("work order status %s does not allow QR generation", w.Status())
	}
	if w.TechnicianID() == nil {
		return fmt.Errorf("work order %d has no assigned technician", w.ID())
	}
	if technician == nil || technician.ID() != *w.TechnicianID() {
		return fmt.Errorf("assigned technician of work order %d not resolved", w.ID())
	}
	if !technician.Active() || technician.Role() != workflow.RoleVendorTechnician {
		return fmt.Errorf("user %d is not an active technician", technician.ID())
	}

	switch scanType {
	case ScanCheckIn:
		if declaredTechnicianCount < 1 {
			return fmt.Errorf("declared technician count must be at least 1 for check-in")
		}
	case ScanCheckOut:
		if w.OwnerID() == nil || *w.OwnerID() != technician.ID() {
			return fmt.Errorf("check-out requires the technician to be the current owner")
		}
		if w.Status() != wvo.StatusServiceInProgress {
			return fmt.Errorf("check-out tokens require an in-progress service visit")
		}
	}

	return nil
}
