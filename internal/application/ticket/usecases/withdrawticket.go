package usecases

import (
	"context"
	"fmt"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/workflow"
	"storefix/internal/shared/errors"
	"storefix/internal/shared/logger"
)

type WithdrawTicketCommand struct {
	TicketID  uint
	ActorID   uint
	ActorRole string
}

type WithdrawTicketResult struct {
	TicketID uint
	Status   string
}

// WithdrawTicketUseCase lets the store pull a ticket back while it waits on
// their own clarification response. WITHDRAWN is terminal.
type WithdrawTicketUseCase struct {
	ticketRepo ticket.Repository
	auditRepo  audit.Repository
	engine     *workflow.Engine
	txManager  TransactionManager
	logger     logger.Interface
}

func NewWithdrawTicketUseCase(
	ticketRepo ticket.Repository,
	auditRepo audit.Repository,
	engine *workflow.Engine,
	txManager TransactionManager,
	logger logger.Interface,
) *WithdrawTicketUseCase {
	return &WithdrawTicketUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		engine:     engine,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *WithdrawTicketUseCase) Execute(ctx context.Context, cmd WithdrawTicketCommand) (*WithdrawTicketResult, error) {
	uc.logger.Infow("executing withdraw ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ActorID == 0 {
		return nil, errors.NewValidationError("actor ID is required")
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
		Action:    workflow.ActionWithdraw,
		ActorID:   cmd.ActorID,
		ActorRole: cmd.ActorRole,
	})
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}
	if !decision.Allowed {
		return nil, transition.DenialError(decision)
	}

	if err := t.ApplyTransition(vo.TicketStatus(decision.NewStatus), nil); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := ticketAuditEntry(t, workflow.ActionWithdraw, from, cmd.ActorID, workflow.NormalizeRole(cmd.ActorRole), nil)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return uc.auditRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist withdraw transition", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	return &WithdrawTicketResult{
		TicketID: t.ID(),
		Status:   t.Status().String(),
	}, nil
}
