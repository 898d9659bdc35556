package usecases

import (
	"context"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/logger"
)

type ReturnWorkOrderCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
	Comment     string
}

type ReturnWorkOrderResult struct {
	WorkOrderID uint
	Status      string
	OwnerID     *uint
}

// ReturnWorkOrderUseCase is the vendor service admin handing a freshly
// created order back to the area maintenance manager for clarification.
// The status stays CREATED; only the owner side flips.
type ReturnWorkOrderUseCase struct {
	transitioner
}

func NewReturnWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *ReturnWorkOrderUseCase {
	return &ReturnWorkOrderUseCase{transitioner{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}}
}

func (uc *ReturnWorkOrderUseCase) Execute(ctx context.Context, cmd ReturnWorkOrderCommand) (*ReturnWorkOrderResult, error) {
	uc.logger.Infow("executing return work order use case", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.ActorID)

	var detail map[string]any
	if len(cmd.Comment) > 0 {
		detail = map[string]any{"comment": cmd.Comment}
	}

	w, err := uc.apply(ctx, cmd.WorkOrderID, workflow.ActionReturn, cmd.ActorID, cmd.ActorRole, detail)
	if err != nil {
		return nil, err
	}

	return &ReturnWorkOrderResult{
		WorkOrderID: w.ID(),
		Status:      w.Status().String(),
		OwnerID:     w.OwnerID(),
	}, nil
}
