package usecases

import (
	"context"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/logger"
)

type ReturnForCorrectionCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
	Comment     string
}

type ReturnForCorrectionResult struct {
	WorkOrderID uint
	Status      string
	OwnerID     *uint
}

// ReturnForCorrectionUseCase lets the store send an accepted order back to
// the vendor service admin when the announced technician headcount is
// wrong. The check-in QR generation step later declares the corrected
// count.
type ReturnForCorrectionUseCase struct {
	transitioner
}

func NewReturnForCorrectionUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *ReturnForCorrectionUseCase {
	return &ReturnForCorrectionUseCase{transitioner{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}}
}

func (uc *ReturnForCorrectionUseCase) Execute(ctx context.Context, cmd ReturnForCorrectionCommand) (*ReturnForCorrectionResult, error) {
	uc.logger.Infow("executing return for correction use case", "work_order_id", cmd.WorkOrderID, "actor_id", cmd.ActorID)

	var detail map[string]any
	if len(cmd.Comment) > 0 {
		detail = map[string]any{"comment": cmd.Comment}
	}

	w, err := uc.apply(ctx, cmd.WorkOrderID, workflow.ActionReturnForCorrection, cmd.ActorID, cmd.ActorRole, detail)
	if err != nil {
		return nil, err
	}

	return &ReturnForCorrectionResult{
		WorkOrderID: w.ID(),
		Status:      w.Status().String(),
		OwnerID:     w.OwnerID(),
	}, nil
}
