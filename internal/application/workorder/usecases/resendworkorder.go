package usecases

import (
	"context"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/logger"
)

type ResendWorkOrderCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
}

type ResendWorkOrderResult struct {
	WorkOrderID uint
	Status      string
	OwnerID     *uint
}

// ResendWorkOrderUseCase is the area maintenance manager sending a returned
// order back to the vendor service admin after clarifying it.
type ResendWorkOrderUseCase struct {
	transitioner
}

func NewResendWorkOrderUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *ResendWorkOrderUseCase {
	return &ResendWorkOrderUseCase{transitioner{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}}
}

func (uc *ResendWorkOrderUseCase) Execute(ctx context.Context, cmd ResendWorkOrderCommand) (*ResendWorkOrderResult, error) {
	uc.logger.Infow("executing resend work order use case", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.ActorID)

	w, err := uc.apply(ctx, cmd.WorkOrderID, workflow.ActionResend, cmd.ActorID, cmd.ActorRole, nil)
	if err != nil {
		return nil, err
	}

	return &ResendWorkOrderResult{
		WorkOrderID: w.ID(),
		Status:      w.Status().String(),
		OwnerID:     w.OwnerID(),
	}, nil
}
