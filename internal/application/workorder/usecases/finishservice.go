package usecases

import (
	"context"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

// Outcomes a technician can report from an in-progress visit besides the
// regular QR check-out.
const (
	ServiceOutcomeFollowUp     = "FOLLOW_UP"
	ServiceOutcomeNewWorkOrder = "NEW_WORK_ORDER"
	ServiceOutcomeUnsuccessful = "UNSUCCESSFUL"
)

type FinishServiceCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
	Outcome     string
	Comment     string
}

type FinishServiceResult struct {
	WorkOrderID uint
	Status      string
	OwnerID     *uint
}

// FinishServiceUseCase records how a visit ended when the technician does
// not simply check out: another visit is needed, the repair needs a fresh
// order, or the repair failed outright.
type FinishServiceUseCase struct {
	transitioner
}

func NewFinishServiceUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *FinishServiceUseCase {
	return &FinishServiceUseCase{transitioner{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}}
}

func (uc *FinishServiceUseCase) Execute(ctx context.Context, cmd FinishServiceCommand) (*FinishServiceResult, error) {
	uc.logger.Infow("executing finish service use case",
		"work_order_id", cmd.WorkOrderID, "outcome", cmd.Outcome)

	var action workflow.Action
	switch cmd.Outcome {
	case ServiceOutcomeFollowUp:
		action = workflow.ActionRequestFollowUp
	case ServiceOutcomeNewWorkOrder:
		action = workflow.ActionRequestNewWorkOrder
	case ServiceOutcomeUnsuccessful:
		action = workflow.ActionMarkUnsuccessful
	default:
		return nil, errors.NewValidationError("outcome must be FOLLOW_UP, NEW_WORK_ORDER or UNSUCCESSFUL")
	}

	detail := map[string]any{"outcome": cmd.Outcome}
	if len(cmd.Comment) > 0 {
		detail["comment"] = cmd.Comment
	}

	w, err := uc.apply(ctx, cmd.WorkOrderID, action, cmd.ActorID, cmd.ActorRole, detail)
	if err != nil {
		return nil, err
	}

	return &FinishServiceResult{
		WorkOrderID: w.ID(),
		Status:      w.Status().String(),
		OwnerID:     w.OwnerID(),
	}, nil
}
