package usecases

import (
	"context"
	"fmt"
	"time"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/qr"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type GetWorkOrderCommand struct {
	WorkOrderID uint
}

type ScanRecordView struct {
	ScanType    string
	GeneratedAt time.Time
	ExpiresAt   time.Time
	Used        bool
	UsedAt      *time.Time
}

type WorkOrderHistoryView struct {
	Action     string
	FromStatus string
	ToStatus   string
	ActorID    uint
	ActorRole  string
	CreatedAt  time.Time
}

type GetWorkOrderResult struct {
	WorkOrderID             uint
	TicketID                uint
	VendorID                uint
	TechnicianID            *uint
	Status                  string
	OwnerType               string
	OwnerID                 *uint
	DeclaredTechnicianCount int
	CheckInAt               *time.Time
	CheckOutAt              *time.Time
	InvoiceBatchID          *uint
	Scans                   []ScanRecordView
	History                 []WorkOrderHistoryView
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type GetWorkOrderUseCase struct {
	workOrderRepo workorder.Repository
	qrRepo        qr.Repository
	auditRepo     audit.Repository
	logger        logger.Interface
}

func NewGetWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	qrRepo qr.Repository,
	auditRepo audit.Repository,
	logger logger.Interface,
) *GetWorkOrderUseCase {
	return &GetWorkOrderUseCase{
		workOrderRepo: workOrderRepo,
		qrRepo:        qrRepo,
		auditRepo:     auditRepo,
		logger:        logger,
	}
}

func (uc *GetWorkOrderUseCase) Execute(ctx context.Context, cmd GetWorkOrderCommand) (*GetWorkOrderResult, error) {
	if cmd.WorkOrderID == 0 {
		return nil, errors.NewValidationError("work order ID is required")
	}

	w, err := uc.workOrderRepo.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("work order %d not found", cmd.WorkOrderID))
	}

	result := &GetWorkOrderResult{
		WorkOrderID:             w.ID(),
		TicketID:                w.TicketID(),
		VendorID:                w.VendorID(),
		TechnicianID:            w.TechnicianID(),
		Status:                  w.Status().String(),
		OwnerType:               string(w.OwnerType()),
		OwnerID:                 w.OwnerID(),
		DeclaredTechnicianCount: w.DeclaredTechnicianCount(),
		CheckInAt:               w.CheckInAt(),
		CheckOutAt:              w.CheckOutAt(),
		InvoiceBatchID:          w.InvoiceBatchID(),
		CreatedAt:               w.CreatedAt(),
		UpdatedAt:               w.UpdatedAt(),
	}

	records, err := uc.qrRepo.FindByWorkOrderID(ctx, w.ID())
	if err != nil {
		uc.logger.Warnw("failed to load scan records", "work_order_id", w.ID(), "error", err)
	}
	for _, r := range records {
		result.Scans = append(result.Scans, ScanRecordView{
			ScanType:    string(r.ScanType()),
			GeneratedAt: r.GeneratedAt(),
			ExpiresAt:   r.ExpiresAt(),
			Used:        r.Used(),
			UsedAt:      r.UsedAt(),
		})
	}

	entries, err := uc.auditRepo.FindByEntity(ctx, workflow.KindWorkOrder, w.ID())
	if err != nil {
		uc.logger.Warnw("failed to load audit history", "work_order_id", w.ID(), "error", err)
	}
	for _, e := range entries {
		result.History = append(result.History, WorkOrderHistoryView{
			Action:     e.Action().String(),
			FromStatus: e.FromStatus().String(),
			ToStatus:   e.ToStatus().String(),
			ActorID:    e.ActorID(),
			ActorRole:  e.ActorRole().String(),
			CreatedAt:  e.CreatedAt(),
		})
	}

	return result, nil
}
