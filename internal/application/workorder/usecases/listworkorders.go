package usecases

import (
	"context"
	"time"

	"storefix/internal/domain/workorder"
	vo "storefix/internal/domain/workorder/valueobjects"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
	"storefix/internal/shared/mapper"
	"storefix/internal/shared/query"
)

type ListWorkOrdersCommand struct {
	Status   string
	TicketID *uint
	VendorID *uint
	OwnerID  *uint

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type WorkOrderSummary struct {
	WorkOrderID  uint
	TicketID     uint
	VendorID     uint
	TechnicianID *uint
	Status       string
	OwnerID      *uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ListWorkOrdersResult struct {
	WorkOrders []WorkOrderSummary
	Total      int64
}

type ListWorkOrdersUseCase struct {
	workOrderRepo workorder.Repository
	logger        logger.Interface
}

func NewListWorkOrdersUseCase(workOrderRepo workorder.Repository, logger logger.Interface) *ListWorkOrdersUseCase {
	return &ListWorkOrdersUseCase{workOrderRepo: workOrderRepo, logger: logger}
}

func (uc *ListWorkOrdersUseCase) Execute(ctx context.Context, cmd ListWorkOrdersCommand) (*ListWorkOrdersResult, error) {
	filter := workorder.Filter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(cmd.Page, cmd.PageSize),
			query.WithSort(cmd.SortBy, cmd.SortOrder),
		),
		TicketID: cmd.TicketID,
		VendorID: cmd.VendorID,
		OwnerID:  cmd.OwnerID,
	}

	if len(cmd.Status) > 0 {
		status, err := vo.NewWorkOrderStatus(cmd.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	orders, total, err := uc.workOrderRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list work orders", "error", err)
		return nil, errors.NewInternalError("failed to list work orders")
	}

	summaries := mapper.MapSlice(orders, func(w *workorder.WorkOrder) WorkOrderSummary {
		return WorkOrderSummary{
			WorkOrderID:  w.ID(),
			TicketID:     w.TicketID(),
			VendorID:     w.VendorID(),
			TechnicianID: w.TechnicianID(),
			Status:       w.Status().String(),
			OwnerID:      w.OwnerID(),
			CreatedAt:    w.CreatedAt(),
			UpdatedAt:    w.UpdatedAt(),
		}
	})

	return &ListWorkOrdersResult{WorkOrders: summaries, Total: total}, nil
}
