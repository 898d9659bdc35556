package usecases

import (
	"context"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/logger"
)

type ResubmitProposalCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
}

type ResubmitProposalResult struct {
	WorkOrderID uint
	Status      string
	OwnerID     *uint
}

// ResubmitProposalUseCase is the vendor back office sending a revised cost
// proposal back to the area maintenance manager.
type ResubmitProposalUseCase struct {
	transitioner
}

func NewResubmitProposalUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *ResubmitProposalUseCase {
	return &ResubmitProposalUseCase{transitioner{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}}
}

func (uc *ResubmitProposalUseCase) Execute(ctx context.Context, cmd ResubmitProposalCommand) (*ResubmitProposalResult, error) {
	uc.logger.Infow("executing resubmit proposal use case", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.ActorID)

	w, err := uc.apply(ctx, cmd.WorkOrderID, workflow.ActionResubmitProposal, cmd.ActorID, cmd.ActorRole, nil)
	if err != nil {
		return nil, err
	}

	return &ResubmitProposalResult{
		WorkOrderID: w.ID(),
		Status:      w.Status().String(),
		OwnerID:     w.OwnerID(),
	}, nil
}
