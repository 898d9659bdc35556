package usecases

import (
	"context"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/logger"
)

type RejectWorkOrderCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
	Comment     string
}

type RejectWorkOrderResult struct {
	WorkOrderID uint
	Status      string
}

// RejectWorkOrderUseCase ends an order without execution: the vendor
// service admin declines a fresh order, or the area maintenance manager
// throws out a prepared cost proposal. Both land in the same terminal
// status with no owner.
type RejectWorkOrderUseCase struct {
	transitioner
}

func NewRejectWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *RejectWorkOrderUseCase {
	return &RejectWorkOrderUseCase{transitioner{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}}
}

func (uc *RejectWorkOrderUseCase) Execute(ctx context.Context, cmd RejectWorkOrderCommand) (*RejectWorkOrderResult, error) {
	uc.logger.Infow("executing reject work order use case", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.ActorID)

	var detail map[string]any
	if len(cmd.Comment) > 0 {
		detail = map[string]any{"comment": cmd.Comment}
	}

	w, err := uc.apply(ctx, cmd.WorkOrderID, workflow.ActionReject, cmd.ActorID, cmd.ActorRole, detail)
	if err != nil {
		return nil, err
	}

	return &RejectWorkOrderResult{
		WorkOrderID: w.ID(),
		Status:      w.Status().String(),
	}, nil
}
