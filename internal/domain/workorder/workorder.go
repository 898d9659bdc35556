package workorder

import (
	"fmt"
	"time"

	"storefix/internal/domain/workflow"
	vo "storefix/internal/domain/workorder/valueobjects"
)

// WorkOrder is the vendor-side execution unit spawned from an approved or
// urgent ticket. Status and owner only change through engine-approved
// transitions; the invoice batch link locks once set.
type WorkOrder struct {
	id                      uint
	ticketID                uint
	vendorID                uint
	technicianID            *uint
	status                  vo.WorkOrderStatus
	ownerType               workflow.OwnerType
	ownerID                 *uint
	declaredTechnicianCount int
	checkInAt               *time.Time
	checkOutAt              *time.Time
	invoiceBatchID          *uint
	version                 int
	createdAt               time.Time
	updatedAt               time.Time
}

func NewWorkOrder(ticketID, vendorID, vendorAdminID uint) (*WorkOrder, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if vendorID == 0 {
		return nil, fmt.Errorf("vendor ID is required")
	}
	if vendorAdminID == 0 {
		return nil, fmt.Errorf("vendor admin ID is required")
	}

	now := time.Now()
	owner := vendorAdminID

	return &WorkOrder{
		ticketID:  ticketID,
		vendorID:  vendorID,
		status:    vo.StatusCreated,
		ownerType: workflow.OwnerVendor,
		ownerID:   &owner,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructWorkOrder(
	id uint,
	ticketID uint,
	vendorID uint,
	technicianID *uint,
	status vo.WorkOrderStatus,
	ownerType workflow.OwnerType,
	ownerID *uint,
	declaredTechnicianCount int,
	checkInAt, checkOutAt *time.Time,
	invoiceBatchID *uint,
	version int,
	createdAt, updatedAt time.Time,
) (*WorkOrder, error) {
	if id == 0 {
		return nil, fmt.Errorf("work order ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &WorkOrder{
		id:                      id,
		ticketID:                ticketID,
		vendorID:                vendorID,
		technicianID:            technicianID,
		status:                  status,
		ownerType:               ownerType,
		ownerID:                 ownerID,
		declaredTechnicianCount: declaredTechnicianCount,
		checkInAt:               checkInAt,
		checkOutAt:              checkOutAt,
		invoiceBatchID:          invoiceBatchID,
		version:                 version,
		createdAt:               createdAt,
		updatedAt:               updatedAt,
	}, nil
}

func (w *WorkOrder) ID() uint                      { return w.id }
func (w *WorkOrder) TicketID() uint                { return w.ticketID }
func (w *WorkOrder) VendorID() uint                { return w.vendorID }
func (w *WorkOrder) TechnicianID() *uint           { return w.technicianID }
func (w *WorkOrder) Status() vo.WorkOrderStatus    { return w.status }
func (w *WorkOrder) OwnerType() workflow.OwnerType { return w.ownerType }
func (w *WorkOrder) OwnerID() *uint                { return w.ownerID }
func (w *WorkOrder) DeclaredTechnicianCount() int  { return w.declaredTechnicianCount }
func (w *WorkOrder) CheckInAt() *time.Time         { return w.checkInAt }
func (w *WorkOrder) CheckOutAt() *time.Time        { return w.checkOutAt }
func (w *WorkOrder) InvoiceBatchID() *uint         { return w.invoiceBatchID }
func (w *WorkOrder) Version() int                  { return w.version }
func (w *WorkOrder) CreatedAt() time.Time          { return w.createdAt }
func (w *WorkOrder) UpdatedAt() time.Time          { return w.updatedAt }

func (w *WorkOrder) SetID(id uint) error {
	if w.id != 0 {
		return fmt.Errorf("work order ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("work order ID cannot be zero")
	}
	w.id = id
	return nil
}

// ApplyTransition records an engine-approved status change with the
// resulting owner; nil owner marks terminal/system states.
func (w *WorkOrder) ApplyTransition(newStatus vo.WorkOrderStatus, ownerType workflow.OwnerType, newOwnerID *uint) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if w.status.IsTerminal() {
		return fmt.Errorf("work order in terminal status %s cannot transition", w.status)
	}

	w.status = newStatus
	w.ownerType = ownerType
	w.ownerID = newOwnerID
	w.updatedAt = time.Now()
	w.version++
	return nil
}

// ReassignOwner hands the order to another actor without a status change,
// used when a returned or follow-up order is routed back to its technician
// at QR generation time.
func (w *WorkOrder) ReassignOwner(ownerType workflow.OwnerType, ownerID uint) error {
	if ownerID == 0 {
		return fmt.Errorf("owner ID cannot be zero")
	}
	w.ownerType = ownerType
	w.ownerID = &ownerID
	w.updatedAt = time.Now()
	w.version++
	return nil
}

func (w *WorkOrder) AssignTechnician(technicianID uint) error {
	if technicianID == 0 {
		return fmt.Errorf("technician ID cannot be zero")
	}
	w.technicianID = &technicianID
	w.updatedAt = time.Now()
	return nil
}

// DeclareTechnicianCount is set by the check-in QR generation step and
// confirmed at check-in.
func (w *WorkOrder) DeclareTechnicianCount(count int) error {
	if count < 1 {
		return fmt.Errorf("declared technician count must be at least 1")
	}
	w.declaredTechnicianCount = count
	w.updatedAt = time.Now()
	return nil
}

func (w *WorkOrder) MarkCheckedIn(at time.Time) {
	w.checkInAt = &at
	w.updatedAt = time.Now()
}

func (w *WorkOrder) MarkCheckedOut(at time.Time) {
	w.checkOutAt = &at
	w.updatedAt = time.Now()
}

// AttachInvoiceBatch links the order into an invoice batch exactly once;
// a linked order can never be included in another batch.
func (w *WorkOrder) AttachInvoiceBatch(batchID uint) error {
	if batchID == 0 {
		return fmt.Errorf("invoice batch ID cannot be zero")
	}
	if w.invoiceBatchID != nil {
		return fmt.Errorf("work order %d is already linked to invoice batch %d", w.id, *w.invoiceBatchID)
	}
	w.invoiceBatchID = &batchID
	w.updatedAt = time.Now()
	return nil
}

// IsActive reports whether the order still blocks its parent ticket's
// ownership changes.
func (w *WorkOrder) IsActive() bool {
	return !w.status.IsTerminal()
}
