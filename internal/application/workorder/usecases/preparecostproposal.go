package usecases

import (
	"context"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/logger"
)

type PrepareCostProposalCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
}

type PrepareCostProposalResult struct {
	WorkOrderID uint
	Status      string
	OwnerID     *uint
}

// PrepareCostProposalUseCase hands the cost proposal to the area
// maintenance manager, either from the back office after a completed visit
// or directly from an in-progress one.
type PrepareCostProposalUseCase struct {
	transitioner
}

func NewPrepareCostProposalUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *PrepareCostProposalUseCase {
	return &PrepareCostProposalUseCase{transitioner{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}}
}

func (uc *PrepareCostProposalUseCase) Execute(ctx context.Context, cmd PrepareCostProposalCommand) (*PrepareCostProposalResult, error) {
	uc.logger.Infow("executing prepare cost proposal use case", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.ActorID)

	w, err := uc.apply(ctx, cmd.WorkOrderID, workflow.ActionPrepareCostProposal, cmd.ActorID, cmd.ActorRole, nil)
	if err != nil {
		return nil, err
	}

	return &PrepareCostProposalResult{
		WorkOrderID: w.ID(),
		Status:      w.Status().String(),
		OwnerID:     w.OwnerID(),
	}, nil
}
