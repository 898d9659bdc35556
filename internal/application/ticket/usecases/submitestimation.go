package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/approval"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/workflow"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type SubmitEstimationCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
	// Amount is the estimated cost in whole currency units.
	Amount int64
}

type SubmitEstimationResult struct {
	TicketID     uint
	EstimationID uint
	Amount       int64
	Status       string
	OwnerID      *uint
}

// SubmitEstimationUseCase records a cost estimation and hands the ticket to
// the start of the amount's approval chain.
type SubmitEstimationUseCase struct {
	ticketRepo     ticket.Repository
	estimationRepo ticket.CostEstimationRepository
	auditRepo      audit.Repository
	resolver       *approval.ChainResolver
	engine         *workflow.Engine
	txManager      TransactionManager
	logger         logger.Interface
}

func NewSubmitEstimationUseCase(
	ticketRepo ticket.Repository,
	estimationRepo ticket.CostEstimationRepository,
	auditRepo audit.Repository,
	resolver *approval.ChainResolver,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *SubmitEstimationUseCase {
	return &SubmitEstimationUseCase{
		ticketRepo:     ticketRepo,
		estimationRepo: estimationRepo,
		auditRepo:      auditRepo,
		resolver:       resolver,
		engine:         engine,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *SubmitEstimationUseCase) Execute(ctx context.Context, cmd SubmitEstimationCommand) (*SubmitEstimationResult, error) {
	uc.logger.Infow("executing submit estimation use case", "ticket_id", cmd.TicketID, "amount", cmd.Amount)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
	}
	if cmd.Amount <= 0 {
		return nil, errors.NewValidationError("estimation amount must be positive")
	}

	t, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	from := workflow.Status(t.Status())
	decision, err := uc.engine.Evaluate(workflow.Request{
		Kind:      workflow.KindTicket,
		Status:    from,
		OwnerID:   t.OwnerID(),
		Action:    workflow.ActionSubmitEstimation,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	estimation, err := ticket.NewCostEstimation(t.ID(), cmd.Amount, cmd.ActorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	first, err := uc.resolver.FirstApprover(ctx, t.ID(), cmd.Amount)
	if err != nil {
		uc.logger.Errorw("failed to resolve first approver", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError(err.Error())
	}
	firstID := first.ID()

	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), &firstID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticketAuditEntry(t, workflow.ActionSubmitEstimation, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole),
		map[string]any{"amount": cmd.Amount, "first_approver_id": firstID})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.estimationRepo.Save(txCtx, estimation); err != nil {
			return err
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist estimation", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("estimation submitted", "ticket_id", t.ID(), "amount", cmd.Amount, "first_approver_id", firstID)

	return &SubmitEstimationResult{
		TicketID:     t.ID(),
		EstimationID: estimation.ID(),
		Amount:       estimation.Amount(),
		Status:       t.Status().String(),
		OwnerID:      t.OwnerID(),
	}, nil
}
