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

// Decisions the area maintenance manager can take on a prepared cost
// proposal. CLOSE also applies to an in-progress order that turns out to
// need no billable work.
const (
	CostProposalDecisionApprove = "APPROVE"
	CostProposalDecisionRevise  = "REVISE"
	CostProposalDecisionReject  = "REJECT"
	CostProposalDecisionClose   = "CLOSE"
)

type DecideCostProposalCommand struct {
	WorkOrderID uint
	ActorID     uint
	ActorRole   string
	Decision    string
	Comment     string
}

type DecideCostProposalResult struct {
	WorkOrderID uint
	Status      string
	OwnerID     *uint
}

// DecideCostProposalUseCase settles a vendor's cost proposal: approve it
// (terminal, ready for invoicing), send it back for revision, reject the
// order, or close it without cost.
type DecideCostProposalUseCase struct {
	transitioner
}

func NewDecideCostProposalUseCase(
	workOrderRepo workorder.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *DecideCostProposalUseCase {
	return &DecideCostProposalUseCase{transitioner{
		workOrderRepo: workOrderRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		engine:        engine,
		txManager:     txManager,
		logger:        logger,
	}}
}

func (uc *DecideCostProposalUseCase) Execute(ctx context.Context, cmd DecideCostProposalCommand) (*DecideCostProposalResult, error) {
	uc.logger.Infow("executing decide cost proposal use case",
		"work_order_id", cmd.WorkOrderID, "decision", cmd.Decision)

	var action workflow.Action
	switch cmd.Decision {
	case CostProposalDecisionApprove:
		action = workflow.ActionApproveCostProposal
	case CostProposalDecisionRevise:
		action = workflow.ActionRequestCostRevision
	case CostProposalDecisionReject:
		action = workflow.ActionReject
	case CostProposalDecisionClose:
		action = workflow.ActionCloseWithoutCost
	default:
		return nil, errors.NewValidationError("decision must be APPROVE, REVISE, REJECT or CLOSE")
	}

	detail := map[string]any{"decision": cmd.Decision}
	if len(cmd.Comment) > 0 {
		detail["comment"] = cmd.Comment
	}

	w, err := uc.apply(ctx, cmd.WorkOrderID, action, cmd.ActorID, cmd.ActorRole, detail)
	if err != nil {
		return nil, err
	}

	return &DecideCostProposalResult{
		WorkOrderID: w.ID(),
		Status:      w.Status().String(),
		OwnerID:     w.OwnerID(),
	}, nil
}
